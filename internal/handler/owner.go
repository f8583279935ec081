package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/service"
)

// OwnerDashboards reports on an owner's store.
type OwnerDashboards interface {
	DashboardForOwner(ctx context.Context, ownerID uint64) (*service.OwnerDashboard, error)
}

type OwnerHandler struct {
	Dashboards OwnerDashboards
}

func NewOwnerHandler(dashboards OwnerDashboards) *OwnerHandler {
	return &OwnerHandler{Dashboards: dashboards}
}

// Ratings returns the average rating and reviewers of the caller's store.
func (h *OwnerHandler) Ratings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	d, err := h.Dashboards.DashboardForOwner(ctx, uid)
	if err != nil {
		if errors.Is(err, service.ErrNoOwnedStore) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return internalError(c, "load owner dashboard failed", err)
	}
	return c.JSON(http.StatusOK, d)
}
