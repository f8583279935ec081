package middleware

// identity.go holds the context keys JWTAuth fills in and the caller-id
// lookup the rate limiter and response cache use to partition their keys.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id" // uint64
	CtxRole   = "role"    // string
)

// callerID returns the authenticated user id as a string, or "anon" when
// the request carries no verified identity.
func callerID(c echo.Context) string {
	if id, ok := c.Get(CtxUserID).(uint64); ok && id != 0 {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
