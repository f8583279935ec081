package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/service"
)

// RatingSubmitter is the rating service as seen by normal users.
type RatingSubmitter interface {
	SubmitOrUpdate(ctx context.Context, in service.SubmitRating) (*model.Rating, bool, error)
	ListForRater(ctx context.Context, userID uint64) ([]model.RatingWithStore, error)
}

// RatingHandler serves rating submission and the caller's rating history.
type RatingHandler struct {
	Ratings RatingSubmitter
}

func NewRatingHandler(ratings RatingSubmitter) *RatingHandler {
	return &RatingHandler{Ratings: ratings}
}

type submitRatingReq struct {
	StoreID  uint64  `json:"store_id" validate:"required"`
	Rating   int     `json:"rating" validate:"required,min=1,max=5"`
	Feedback *string `json:"feedback" validate:"omitempty,max=400"`
}

// Submit creates the caller's rating for a store or replaces it.  It
// answers 201 for a first rating and 200 for a resubmission.
func (h *RatingHandler) Submit(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req submitRatingReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	r, created, err := h.Ratings.SubmitOrUpdate(ctx, service.SubmitRating{
		UserID:   uid,
		StoreID:  req.StoreID,
		Score:    req.Rating,
		Feedback: req.Feedback,
	})
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return internalError(c, "submit rating failed", err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, r)
}

// Mine lists every rating the caller has submitted.
func (h *RatingHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.Ratings.ListForRater(ctx, uid)
	if err != nil {
		return internalError(c, "list ratings failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
