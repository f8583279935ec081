package handler // handler holds the echo HTTP handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// requestTimeout bounds the database work of a single request.
const requestTimeout = 5 * time.Second

var errNoCaller = errors.New("invalid user_id in context")

// getUserID returns the caller id JWTAuth stored in the context.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		if t != 0 {
			return t, nil
		}
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil && n != 0 {
			return n, nil
		}
	}
	return 0, errNoCaller
}

// bindAndValidate decodes the body into dst and runs the echo validator.
// On failure it has already written the 400 response and returns false.
func bindAndValidate(c echo.Context, dst interface{}) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "validation failed",
			"details": validationDetails(err),
		})
	}
	return true, nil
}

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}

func internalError(c echo.Context, msg string, err error) error {
	zerolog.Ctx(c.Request().Context()).Error().Err(err).Str("route", c.Path()).Msg(msg)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}
