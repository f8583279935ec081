package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/store-rating/internal/model"
)

// StoreSearchQuery filters and orders the store listing.  ViewerID selects
// whose own rating is attached to each row.
type StoreSearchQuery struct {
	ViewerID uint64
	Search   string
	SortBy   string
	Desc     bool
}

// storeSortColumns maps listing sort keys to SQL columns.  Anything not in
// the map sorts by name; caller text never reaches the ORDER BY clause.
var storeSortColumns = map[string]string{
	"name":    "s.name",
	"address": "s.address",
}

// SearchForViewer lists stores with their raw average score (0 when unrated)
// and the viewer's own score when one exists.
func (r *StoreRepo) SearchForViewer(ctx context.Context, q StoreSearchQuery) ([]model.StoreListing, error) {
	where := []string{}
	args := []any{q.ViewerID}

	if s := strings.TrimSpace(q.Search); s != "" {
		where = append(where, "(LOWER(s.name) LIKE ? OR LOWER(s.address) LIKE ?)")
		p := likePattern(strings.ToLower(s))
		args = append(args, p, p)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	col, ok := storeSortColumns[q.SortBy]
	if !ok {
		col = storeSortColumns["name"]
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}

	dataSQL := `SELECT
			s.id,
			s.name,
			s.address,
			s.email,
			COALESCE(AVG(r.rating), 0) AS overall_rating,
			ur.rating AS user_rating
		FROM stores s
		LEFT JOIN ratings r  ON r.store_id = s.id
		LEFT JOIN ratings ur ON ur.store_id = s.id AND ur.user_id = ?
		WHERE ` + cond + `
		GROUP BY s.id, s.name, s.address, s.email, ur.rating
		ORDER BY ` + col + " " + dir + ", s.id ASC"

	rows, err := r.db.QueryContext(ctx, dataSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.StoreListing{}
	for rows.Next() {
		var (
			d  model.StoreListing
			ur sql.NullInt64
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Address, &d.Email, &d.OverallRating, &ur); err != nil {
			return nil, err
		}
		if ur.Valid {
			v := int(ur.Int64)
			d.UserRating = &v
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
