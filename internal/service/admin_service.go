package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/repository"
)

// Counter reports the number of rows in one table.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// AccountCreator persists new accounts, hashing the password with cost.
type AccountCreator interface {
	Create(ctx context.Context, u *model.User, password string, cost int) error
}

// AdminService serves the administrator dashboard and account creation.
type AdminService struct {
	users      AccountCreator
	userCount  Counter
	storeCount Counter
	rateCount  Counter
	bcryptCost int
	cache      Invalidator
	log        zerolog.Logger
}

func NewAdminService(users AccountCreator, userCount, storeCount, rateCount Counter, bcryptCost int, cache Invalidator, log zerolog.Logger) *AdminService {
	return &AdminService{
		users:      users,
		userCount:  userCount,
		storeCount: storeCount,
		rateCount:  rateCount,
		bcryptCost: bcryptCost,
		cache:      cache,
		log:        log.With().Str("component", "admin-service").Logger(),
	}
}

// Stats returns the platform totals.
func (s *AdminService) Stats(ctx context.Context) (model.DashboardStats, error) {
	var (
		out model.DashboardStats
		err error
	)
	if out.TotalUsers, err = s.userCount.Count(ctx); err != nil {
		return out, err
	}
	if out.TotalStores, err = s.storeCount.Count(ctx); err != nil {
		return out, err
	}
	if out.TotalRatings, err = s.rateCount.Count(ctx); err != nil {
		return out, err
	}
	return out, nil
}

// NewAccount describes an account to create.
type NewAccount struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// CreateUser creates an account with an explicit role.
func (s *AdminService) CreateUser(ctx context.Context, in NewAccount) (*model.User, error) {
	role := strings.ToUpper(strings.TrimSpace(in.Role))
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	u := &model.User{
		Name:    strings.TrimSpace(in.Name),
		Email:   in.Email,
		Address: strings.TrimSpace(in.Address),
		Role:    role,
	}
	if err := s.users.Create(ctx, u, in.Password, s.bcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.log.Info().Uint64("user_id", u.ID).Str("role", u.Role).Msg("account created by admin")
	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			s.log.Warn().Err(err).Msg("cache invalidation failed")
		}
	}
	return u, nil
}
