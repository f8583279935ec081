package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/service"
)

// AdminOps are the administrator-only account and statistics operations.
type AdminOps interface {
	Stats(ctx context.Context) (model.DashboardStats, error)
	CreateUser(ctx context.Context, in service.NewAccount) (*model.User, error)
}

// UserLister produces the administrator's user listing.
type UserLister interface {
	UsersForAdmin(ctx context.Context, search, role, sortField, sortOrder string) ([]model.UserListing, error)
}

// AdminHandler serves the /admin endpoints.
type AdminHandler struct {
	Admin    AdminOps
	Listings UserLister
}

func NewAdminHandler(admin AdminOps, listings UserLister) *AdminHandler {
	return &AdminHandler{Admin: admin, Listings: listings}
}

type createUserReq struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address" validate:"required,max=400"`
	Role     string `json:"role" validate:"required,oneof=ADMIN USER OWNER"`
}

// CreateUser creates an account with any role.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	u, err := h.Admin.CreateUser(ctx, service.NewAccount{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, u)
	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRole):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return internalError(c, "create user failed", err)
	}
}

// ListUsers returns accounts filtered by ?search= and ?role= and ordered by
// ?sort_by= and ?order=.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	p := readListParams(c)
	role := c.QueryParam("role")
	if role != "" && !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "validation failed",
			"details": map[string]string{"role": "must be one of: ADMIN USER OWNER"},
		})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.Listings.UsersForAdmin(ctx, p.Search, role, p.SortBy, p.Order)
	if err != nil {
		return internalError(c, "list users failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Dashboard returns platform totals.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.Admin.Stats(ctx)
	if err != nil {
		return internalError(c, "load dashboard failed", err)
	}
	return c.JSON(http.StatusOK, stats)
}
