package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/store-rating/internal/metrics"
	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/queue"
	"github.com/iliyamo/store-rating/internal/repository"
)

// RatingLedger is the persistence the rating service needs.  Create must
// report repository.ErrRatingExists when the (user, store) pair is taken.
type RatingLedger interface {
	GetByUserAndStore(ctx context.Context, userID, storeID uint64) (*model.Rating, error)
	Create(ctx context.Context, r *model.Rating) error
	Update(ctx context.Context, r *model.Rating) error
	ListByUser(ctx context.Context, userID uint64) ([]model.RatingWithStore, error)
	ListByStore(ctx context.Context, storeID uint64) ([]model.StoreReview, error)
	StoreAggregate(ctx context.Context, storeID uint64) (avg float64, count int64, err error)
}

// StoreLookup resolves stores by id and by owner.
type StoreLookup interface {
	GetByID(ctx context.Context, id uint64) (*model.Store, error)
	FirstByOwner(ctx context.Context, ownerID uint64) (*model.Store, error)
}

// EventPublisher receives an event after every successful rating write.
type EventPublisher interface {
	PublishRatingSubmitted(ctx context.Context, ev queue.RatingSubmittedEvent) error
}

// Invalidator drops cached listings after a write.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// RatingService enforces one rating per (user, store) and computes the
// store aggregates.
type RatingService struct {
	ratings RatingLedger
	stores  StoreLookup
	events  EventPublisher
	cache   Invalidator
	log     zerolog.Logger
	now     func() time.Time
}

// NewRatingService wires the service.  events and cache may be nil.
func NewRatingService(ratings RatingLedger, stores StoreLookup, events EventPublisher, cache Invalidator, log zerolog.Logger) *RatingService {
	return &RatingService{
		ratings: ratings,
		stores:  stores,
		events:  events,
		cache:   cache,
		log:     log.With().Str("component", "rating-service").Logger(),
		now:     time.Now,
	}
}

// SubmitRating is one submission.  Score is trusted to be within 1..5 and
// Feedback within 400 characters; the request layer checks both.
type SubmitRating struct {
	UserID   uint64
	StoreID  uint64
	Score    int
	Feedback *string
}

// SubmitOrUpdate stores the caller's rating for a store, replacing score and
// feedback when the caller rated it before.  created reports whether a new
// row was inserted.  An insert that loses a race against a concurrent
// submission for the same pair is retried as an update, so the ledger never
// holds two rows for one pair.
func (s *RatingService) SubmitOrUpdate(ctx context.Context, in SubmitRating) (r *model.Rating, created bool, err error) {
	if _, err := s.stores.GetByID(ctx, in.StoreID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, false, ErrStoreNotFound
		}
		return nil, false, fmt.Errorf("lookup store: %w", err)
	}

	rt := &model.Rating{
		UserID:   in.UserID,
		StoreID:  in.StoreID,
		Score:    in.Score,
		Feedback: normalizeFeedback(in.Feedback),
	}

	existing, err := s.ratings.GetByUserAndStore(ctx, in.UserID, in.StoreID)
	switch {
	case err == nil:
		rt.ID = existing.ID
		if err := s.ratings.Update(ctx, rt); err != nil {
			return nil, false, fmt.Errorf("update rating: %w", err)
		}
	case errors.Is(err, repository.ErrRatingNotFound):
		err = s.ratings.Create(ctx, rt)
		if errors.Is(err, repository.ErrRatingExists) {
			s.log.Debug().Uint64("user_id", in.UserID).Uint64("store_id", in.StoreID).
				Msg("concurrent insert for pair, updating instead")
			err = s.ratings.Update(ctx, rt)
		} else if err == nil {
			created = true
		}
		if err != nil {
			return nil, false, fmt.Errorf("save rating: %w", err)
		}
	default:
		return nil, false, fmt.Errorf("lookup rating: %w", err)
	}

	s.afterWrite(ctx, rt, created)
	return rt, created, nil
}

// afterWrite runs the best-effort side effects of a committed rating.
// Their failures are logged and never undo the write.
func (s *RatingService) afterWrite(ctx context.Context, rt *model.Rating, created bool) {
	metrics.RatingSubmitted(created)
	s.log.Info().
		Uint64("rating_id", rt.ID).
		Uint64("user_id", rt.UserID).
		Uint64("store_id", rt.StoreID).
		Int("rating", rt.Score).
		Bool("created", created).
		Msg("rating saved")

	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			s.log.Warn().Err(err).Msg("cache invalidation failed")
		}
	}
	if s.events != nil {
		ev := queue.NewRatingSubmittedEvent(rt.ID, rt.UserID, rt.StoreID, rt.Score, rt.Feedback != nil, created, s.now())
		if err := s.events.PublishRatingSubmitted(ctx, ev); err != nil {
			s.log.Warn().Err(err).Uint64("rating_id", rt.ID).Msg("publish rating event failed")
		}
	}
}

// ListForRater returns every rating userID has submitted, each with its
// store, in submission order.
func (s *RatingService) ListForRater(ctx context.Context, userID uint64) ([]model.RatingWithStore, error) {
	return s.ratings.ListByUser(ctx, userID)
}

// AverageForStore returns the store's mean score rounded to one decimal, or
// 0 when it has no ratings.
func (s *RatingService) AverageForStore(ctx context.Context, storeID uint64) (float64, error) {
	avg, count, err := s.ratings.StoreAggregate(ctx, storeID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	return roundOne(avg), nil
}

// ReviewersForStore returns the store's ratings with their authors, most
// recent first.
func (s *RatingService) ReviewersForStore(ctx context.Context, storeID uint64) ([]model.StoreReview, error) {
	return s.ratings.ListByStore(ctx, storeID)
}

// OwnerDashboard is what a store owner sees about their store.
type OwnerDashboard struct {
	Store         model.StoreRef      `json:"store"`
	AverageRating float64             `json:"average_rating"`
	TotalRatings  int                 `json:"total_ratings"`
	Reviewers     []model.StoreReview `json:"reviewers"`
}

// DashboardForOwner reports on the owner's store.  An owner with several
// stores sees the one with the lowest id; an owner with none gets
// ErrNoOwnedStore.
func (s *RatingService) DashboardForOwner(ctx context.Context, ownerID uint64) (*OwnerDashboard, error) {
	st, err := s.stores.FirstByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, ErrNoOwnedStore
		}
		return nil, err
	}
	reviewers, err := s.ReviewersForStore(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	avg, err := s.AverageForStore(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	return &OwnerDashboard{
		Store:         model.StoreRef{ID: st.ID, Name: st.Name, Email: st.Email, Address: st.Address},
		AverageRating: avg,
		TotalRatings:  len(reviewers),
		Reviewers:     reviewers,
	}, nil
}

// normalizeFeedback maps missing and empty feedback to nil.  Any other
// text, whitespace included, is stored as sent.
func normalizeFeedback(fb *string) *string {
	if fb == nil || *fb == "" {
		return nil
	}
	v := *fb
	return &v
}
