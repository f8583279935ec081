package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/handler"
	"github.com/iliyamo/store-rating/internal/middleware"
	"github.com/iliyamo/store-rating/internal/model"
)

// RegisterOwner registers OWNER-scoped endpoints under /v1/owner.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, guards Guards) {
	g := e.Group("/v1/owner", guards.authed()...)
	g.Use(middleware.RequireRole(model.RoleOwner))

	g.GET("/ratings", o.Ratings, guards.cached()...)
}
