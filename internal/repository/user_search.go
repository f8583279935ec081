package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/store-rating/internal/model"
)

// UserSearchQuery filters and orders the admin user listing.  An empty Role
// matches every role.
type UserSearchQuery struct {
	Search string
	Role   string
	SortBy string
	Desc   bool
}

var userSortColumns = map[string]string{
	"name":    "u.name",
	"email":   "u.email",
	"address": "u.address",
	"role":    "u.role",
}

// Search lists users.  AverageRating holds the raw mean over every rating of
// every store the user owns and is nil when there is none.
func (r *UserRepo) Search(ctx context.Context, q UserSearchQuery) ([]model.UserListing, error) {
	where := []string{}
	args := []any{}

	if q.Role != "" {
		where = append(where, "u.role = ?")
		args = append(args, q.Role)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		where = append(where, "(LOWER(u.name) LIKE ? OR LOWER(u.email) LIKE ? OR LOWER(u.address) LIKE ?)")
		p := likePattern(strings.ToLower(s))
		args = append(args, p, p, p)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	col, ok := userSortColumns[q.SortBy]
	if !ok {
		col = userSortColumns["name"]
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}

	dataSQL := `SELECT
			u.id,
			u.name,
			u.email,
			u.role,
			u.address,
			AVG(r.rating) AS average_rating
		FROM users u
		LEFT JOIN stores s  ON s.owner_id = u.id
		LEFT JOIN ratings r ON r.store_id = s.id
		WHERE ` + cond + `
		GROUP BY u.id, u.name, u.email, u.role, u.address
		ORDER BY ` + col + " " + dir + ", u.id ASC"

	rows, err := r.DB.QueryContext(ctx, dataSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.UserListing{}
	for rows.Next() {
		var (
			d   model.UserListing
			avg sql.NullFloat64
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Role, &d.Address, &avg); err != nil {
			return nil, err
		}
		if avg.Valid {
			v := avg.Float64
			d.AverageRating = &v
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
