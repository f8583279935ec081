package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/repository"
)

// StoreCreator persists new stores.
type StoreCreator interface {
	Create(ctx context.Context, s *model.Store) error
}

// UserLookup resolves accounts by id.
type UserLookup interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// StoreService registers stores on behalf of administrators.
type StoreService struct {
	stores StoreCreator
	users  UserLookup
	cache  Invalidator
	log    zerolog.Logger
}

func NewStoreService(stores StoreCreator, users UserLookup, cache Invalidator, log zerolog.Logger) *StoreService {
	return &StoreService{stores: stores, users: users, cache: cache, log: log.With().Str("component", "store-service").Logger()}
}

// NewStore is an administrator's store registration.
type NewStore struct {
	Name    string
	Email   string
	Address string
	OwnerID uint64
}

// Create registers a store.  The owner must exist (ErrOwnerNotFound) and
// hold the OWNER role (ErrOwnerRole).
func (s *StoreService) Create(ctx context.Context, in NewStore) (*model.Store, error) {
	owner, err := s.users.GetByID(ctx, in.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	if owner.Role != model.RoleOwner {
		return nil, ErrOwnerRole
	}

	st := &model.Store{
		OwnerID: owner.ID,
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Address: strings.TrimSpace(in.Address),
	}
	if err := s.stores.Create(ctx, st); err != nil {
		return nil, err
	}
	s.log.Info().Uint64("store_id", st.ID).Uint64("owner_id", st.OwnerID).Msg("store created")
	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			s.log.Warn().Err(err).Msg("cache invalidation failed")
		}
	}
	return st, nil
}
