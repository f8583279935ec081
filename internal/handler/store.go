package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/service"
)

// StoreRegistrar creates stores.
type StoreRegistrar interface {
	Create(ctx context.Context, in service.NewStore) (*model.Store, error)
}

// StoreLister produces the store browser listing.
type StoreLister interface {
	StoresForViewer(ctx context.Context, viewerID uint64, search, sortField, sortOrder string) ([]model.StoreListing, error)
}

// StoreHandler serves store registration and browsing.
type StoreHandler struct {
	Stores   StoreRegistrar
	Listings StoreLister
}

func NewStoreHandler(stores StoreRegistrar, listings StoreLister) *StoreHandler {
	return &StoreHandler{Stores: stores, Listings: listings}
}

type createStoreReq struct {
	Name    string `json:"name" validate:"required,min=20,max=60"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Address string `json:"address" validate:"required,max=400"`
	OwnerID uint64 `json:"owner_id" validate:"required"`
}

// Create registers a store for an existing store owner (ADMIN).
func (h *StoreHandler) Create(c echo.Context) error {
	var req createStoreReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	st, err := h.Stores.Create(ctx, service.NewStore{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, st)
	case errors.Is(err, service.ErrOwnerNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrOwnerRole):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	default:
		return internalError(c, "create store failed", err)
	}
}

// List returns stores matching ?search= ordered by ?sort_by= and ?order=,
// each with the caller's own rating attached.
func (h *StoreHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	p := readListParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.Listings.StoresForViewer(ctx, uid, p.Search, p.SortBy, p.Order)
	if err != nil {
		return internalError(c, "list stores failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
