package model

import "time"

// Role values as stored in users.role and carried in the JWT "role" claim.
const (
	RoleAdmin = "ADMIN" // System Administrator
	RoleUser  = "USER"  // Normal User
	RoleOwner = "OWNER" // Store Owner
)

// Roles lists every accepted role value.
var Roles = []string{RoleAdmin, RoleUser, RoleOwner}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// User represents an account record as stored in the `users` table.
// Email is unique across all accounts.  Role is fixed at creation; signup
// always produces RoleUser while administrators may pick any role.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name (20–60 characters).
//  Email        – unique, lower-cased email address.
//  PasswordHash – bcrypt hash, never serialized.
//  Address      – postal address (up to 400 characters).
//  Role         – one of RoleAdmin, RoleUser, RoleOwner.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserListing is one row of the administrator's user table.  AverageRating
// is set only for store owners whose stores have received ratings.
type UserListing struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Role          string   `json:"role"`
	Address       string   `json:"address"`
	AverageRating *float64 `json:"average_rating"`
}

// DashboardStats holds the administrator dashboard totals.
type DashboardStats struct {
	TotalUsers   int64 `json:"total_users"`
	TotalStores  int64 `json:"total_stores"`
	TotalRatings int64 `json:"total_ratings"`
}
