package router // package router registers the HTTP routes of the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/handler"
	"github.com/iliyamo/store-rating/internal/metrics"
	"github.com/iliyamo/store-rating/internal/middleware"
)

// Guards carries the middleware every authenticated group composes.  A nil
// RateLimit or Cache is skipped.
type Guards struct {
	JWTSecret string
	RateLimit echo.MiddlewareFunc
	Cache     echo.MiddlewareFunc
}

// authed returns JWT validation followed by the rate limiter, so the limiter
// can key on the verified caller.
func (g Guards) authed() []echo.MiddlewareFunc {
	mw := []echo.MiddlewareFunc{middleware.JWTAuth(g.JWTSecret)}
	if g.RateLimit != nil {
		mw = append(mw, g.RateLimit)
	}
	return mw
}

// cached returns the response cache for listing routes, or nothing.
func (g Guards) cached() []echo.MiddlewareFunc {
	if g.Cache == nil {
		return nil
	}
	return []echo.MiddlewareFunc{g.Cache}
}

// RegisterRoutes registers the unauthenticated operational endpoints.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

// RegisterAuth registers session endpoints under /v1/auth and the
// account endpoints every signed-in role may use.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, guards Guards) {
	g := e.Group("/v1/auth")
	if guards.RateLimit != nil {
		g.Use(guards.RateLimit)
	}
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	me := guards.authed()
	e.GET("/v1/me", a.Me, me...)
	e.PATCH("/v1/users/change-password", a.ChangePassword, me...)
}
