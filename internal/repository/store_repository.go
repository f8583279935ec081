package repository

// This file defines the store repository.  A store belongs to a single
// owner and is created by an administrator; there is no update path.

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/store-rating/internal/model"
)

const storeColumns = "id, owner_id, name, email, address, created_at, updated_at"

// StoreRepo encapsulates all database queries related to stores.
type StoreRepo struct {
	db *sql.DB
}

// NewStoreRepo constructs a StoreRepo with the provided DB handle.
func NewStoreRepo(db *sql.DB) *StoreRepo {
	return &StoreRepo{db: db}
}

// Create inserts a new store.  On success the store's ID and timestamp
// fields are populated from a follow-up SELECT.
func (r *StoreRepo) Create(ctx context.Context, s *model.Store) error {
	const qInsert = "INSERT INTO stores (owner_id, name, email, address) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, s.OwnerID, s.Name, s.Email, s.Address)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	created, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*s = *created
	return nil
}

// GetByID fetches a store by its ID.  It returns ErrStoreNotFound if no
// row is found.
func (r *StoreRepo) GetByID(ctx context.Context, id uint64) (*model.Store, error) {
	const q = "SELECT " + storeColumns + " FROM stores WHERE id = ?"
	return scanStore(r.db.QueryRowContext(ctx, q, id))
}

// FirstByOwner returns the owner's store with the lowest id, or
// ErrStoreNotFound when the owner has none.
func (r *StoreRepo) FirstByOwner(ctx context.Context, ownerID uint64) (*model.Store, error) {
	const q = "SELECT " + storeColumns + " FROM stores WHERE owner_id = ? ORDER BY id LIMIT 1"
	return scanStore(r.db.QueryRowContext(ctx, q, ownerID))
}

// Count returns the number of registered stores.
func (r *StoreRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stores").Scan(&n)
	return n, err
}

func scanStore(row *sql.Row) (*model.Store, error) {
	var s model.Store
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Email, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return &s, nil
}
