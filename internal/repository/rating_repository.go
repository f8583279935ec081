package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/store-rating/internal/model"
)

const ratingColumns = "id, user_id, store_id, rating, feedback, created_at, updated_at"

// RatingRepo persists rows of the `ratings` table.  The table carries a
// UNIQUE (user_id, store_id) key, so at most one row exists per pair no
// matter how submissions interleave.
type RatingRepo struct {
	db *sql.DB
}

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// GetByUserAndStore returns the rating userID gave storeID, or
// ErrRatingNotFound.
func (r *RatingRepo) GetByUserAndStore(ctx context.Context, userID, storeID uint64) (*model.Rating, error) {
	const q = "SELECT " + ratingColumns + " FROM ratings WHERE user_id = ? AND store_id = ? LIMIT 1"
	var (
		rt       model.Rating
		feedback sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, userID, storeID).
		Scan(&rt.ID, &rt.UserID, &rt.StoreID, &rt.Score, &feedback, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	rt.Feedback = nullStringPtr(feedback)
	return &rt, nil
}

// Create inserts a new rating and reloads it so ID and timestamps are set.
// A unique key violation is reported as ErrRatingExists.
func (r *RatingRepo) Create(ctx context.Context, rt *model.Rating) error {
	const q = "INSERT INTO ratings (user_id, store_id, rating, feedback) VALUES (?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, rt.UserID, rt.StoreID, rt.Score, rt.Feedback); err != nil {
		if isDuplicateKey(err) {
			return ErrRatingExists
		}
		return err
	}
	return r.reload(ctx, rt)
}

// Update overwrites score and feedback of the (UserID, StoreID) row and
// reloads it.  ErrRatingNotFound is returned when the row is gone.
func (r *RatingRepo) Update(ctx context.Context, rt *model.Rating) error {
	const q = `UPDATE ratings SET rating = ?, feedback = ?
	           WHERE user_id = ? AND store_id = ?`
	if _, err := r.db.ExecContext(ctx, q, rt.Score, rt.Feedback, rt.UserID, rt.StoreID); err != nil {
		return err
	}
	// RowsAffected is 0 when the values did not change, so existence is
	// checked by the reload instead.
	return r.reload(ctx, rt)
}

func (r *RatingRepo) reload(ctx context.Context, rt *model.Rating) error {
	stored, err := r.GetByUserAndStore(ctx, rt.UserID, rt.StoreID)
	if err != nil {
		return err
	}
	*rt = *stored
	return nil
}

// ListByUser returns every rating authored by userID with its store, in
// insertion order.
func (r *RatingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.RatingWithStore, error) {
	const q = `SELECT r.id, r.user_id, r.store_id, r.rating, r.feedback, r.created_at, r.updated_at,
	                  s.id, s.name, s.email, s.address
	           FROM ratings r
	           JOIN stores s ON s.id = r.store_id
	           WHERE r.user_id = ?
	           ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RatingWithStore{}
	for rows.Next() {
		var (
			item     model.RatingWithStore
			feedback sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.StoreID, &item.Score, &feedback, &item.CreatedAt, &item.UpdatedAt,
			&item.Store.ID, &item.Store.Name, &item.Store.Email, &item.Store.Address); err != nil {
			return nil, err
		}
		item.Feedback = nullStringPtr(feedback)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByStore returns every rating for storeID with the rater's public
// identity, most recent first.
func (r *RatingRepo) ListByStore(ctx context.Context, storeID uint64) ([]model.StoreReview, error) {
	const q = `SELECT r.id, r.user_id, r.store_id, r.rating, r.feedback, r.created_at, r.updated_at,
	                  u.id, u.name, u.email
	           FROM ratings r
	           JOIN users u ON u.id = r.user_id
	           WHERE r.store_id = ?
	           ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.StoreReview{}
	for rows.Next() {
		var (
			item     model.StoreReview
			feedback sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.StoreID, &item.Score, &feedback, &item.CreatedAt, &item.UpdatedAt,
			&item.User.ID, &item.User.Name, &item.User.Email); err != nil {
			return nil, err
		}
		item.Feedback = nullStringPtr(feedback)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// StoreAggregate returns the raw mean score and rating count for storeID.
// The mean is 0 when count is 0.
func (r *RatingRepo) StoreAggregate(ctx context.Context, storeID uint64) (float64, int64, error) {
	const q = "SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM ratings WHERE store_id = ?"
	var (
		count int64
		avg   float64
	)
	if err := r.db.QueryRowContext(ctx, q, storeID).Scan(&count, &avg); err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}

// Count returns the total number of ratings.
func (r *RatingRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ratings").Scan(&n)
	return n, err
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
