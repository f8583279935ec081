package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating/internal/model"
)

type fixedCount struct {
	n   int64
	err error
}

func (f fixedCount) Count(context.Context) (int64, error) { return f.n, f.err }

func newAdminFixture(users, stores, ratings fixedCount) (*AdminService, *memUsers) {
	mu := &memUsers{byID: map[uint64]*model.User{}, byEmail: map[string]bool{}}
	return NewAdminService(mu, users, stores, ratings, 4, &countingInvalidator{}, zerolog.Nop()), mu
}

func TestAdminService_Stats(t *testing.T) {
	svc, _ := newAdminFixture(fixedCount{n: 5}, fixedCount{n: 2}, fixedCount{n: 7})

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DashboardStats{TotalUsers: 5, TotalStores: 2, TotalRatings: 7}, got)
}

func TestAdminService_StatsError(t *testing.T) {
	svc, _ := newAdminFixture(fixedCount{n: 5}, fixedCount{err: errBoom}, fixedCount{n: 7})

	_, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestAdminService_CreateUser(t *testing.T) {
	svc, users := newAdminFixture(fixedCount{}, fixedCount{}, fixedCount{})
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, NewAccount{Name: "Owner Of The Corner Store", Email: "o@example.com", Password: "Secret!Pass", Address: "1 Main St", Role: "owner"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, u.Role)
	assert.Contains(t, users.byID, u.ID)

	_, err = svc.CreateUser(ctx, NewAccount{Email: "o@example.com", Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.CreateUser(ctx, NewAccount{Email: "x@example.com", Role: "SUPERUSER"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}
