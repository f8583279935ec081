package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/handler"
	"github.com/iliyamo/store-rating/internal/middleware"
	"github.com/iliyamo/store-rating/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, guards Guards) {
	g := e.Group("/v1/admin", guards.authed()...)
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.POST("/users", a.CreateUser)
	g.GET("/users", a.ListUsers, guards.cached()...)
	g.GET("/dashboard", a.Dashboard, guards.cached()...)
}
