package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole admits only callers whose role claim is one of roles and
// answers 403 otherwise.  It must run after JWTAuth.  Route groups compose
// it with JWTAuth so handlers never check roles themselves.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
