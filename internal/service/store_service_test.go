package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/repository"
)

type memUsers struct {
	byID    map[uint64]*model.User
	byEmail map[string]bool
	nextID  uint64
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) Create(_ context.Context, u *model.User, _ string, _ int) error {
	if m.byEmail[u.Email] {
		return repository.ErrEmailExists
	}
	m.nextID++
	u.ID = m.nextID
	m.byEmail[u.Email] = true
	m.byID[u.ID] = u
	return nil
}

type memStoreCreator struct{ created []*model.Store }

func (m *memStoreCreator) Create(_ context.Context, s *model.Store) error {
	s.ID = uint64(len(m.created) + 1)
	m.created = append(m.created, s)
	return nil
}

func newStoreFixture() (*StoreService, *memStoreCreator, *countingInvalidator) {
	users := &memUsers{byID: map[uint64]*model.User{
		1: {ID: 1, Role: model.RoleOwner},
		2: {ID: 2, Role: model.RoleUser},
	}, byEmail: map[string]bool{}}
	stores := &memStoreCreator{}
	inv := &countingInvalidator{}
	return NewStoreService(stores, users, inv, zerolog.Nop()), stores, inv
}

func TestStoreService_Create(t *testing.T) {
	svc, stores, inv := newStoreFixture()

	st, err := svc.Create(context.Background(), NewStore{
		Name: "  Corner Grocery And Deli ", Email: "Shop@Example.com", Address: "1 Main St", OwnerID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Corner Grocery And Deli", st.Name)
	assert.Equal(t, "shop@example.com", st.Email)
	assert.Equal(t, uint64(1), st.OwnerID)
	assert.Len(t, stores.created, 1)
	assert.Equal(t, 1, inv.bumps)
}

func TestStoreService_CreateRequiresExistingOwner(t *testing.T) {
	svc, stores, _ := newStoreFixture()

	_, err := svc.Create(context.Background(), NewStore{Name: "x", OwnerID: 99})
	assert.ErrorIs(t, err, ErrOwnerNotFound)
	assert.Empty(t, stores.created)
}

func TestStoreService_CreateRequiresOwnerRole(t *testing.T) {
	svc, stores, inv := newStoreFixture()

	_, err := svc.Create(context.Background(), NewStore{Name: "x", OwnerID: 2})
	assert.ErrorIs(t, err, ErrOwnerRole)
	assert.Empty(t, stores.created)
	assert.Zero(t, inv.bumps)
}
