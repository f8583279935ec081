package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/handler"
	"github.com/iliyamo/store-rating/internal/middleware"
	"github.com/iliyamo/store-rating/internal/model"
)

// RegisterStores registers /v1/stores.  Browsing is open to normal users and
// administrators; registering a store is administrator-only.
func RegisterStores(e *echo.Echo, s *handler.StoreHandler, guards Guards) {
	g := e.Group("/v1/stores", guards.authed()...)

	g.POST("", s.Create, middleware.RequireRole(model.RoleAdmin))
	browse := append([]echo.MiddlewareFunc{middleware.RequireRole(model.RoleUser, model.RoleAdmin)}, guards.cached()...)
	g.GET("", s.List, browse...)
}

// RegisterRatings registers the normal-user rating endpoints.
func RegisterRatings(e *echo.Echo, r *handler.RatingHandler, guards Guards) {
	g := e.Group("/v1/ratings", guards.authed()...)
	g.Use(middleware.RequireRole(model.RoleUser))

	g.POST("", r.Submit)
	g.GET("/my-ratings", r.Mine, guards.cached()...)
}
