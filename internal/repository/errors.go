// Package repository contains the MySQL data access layer.  Each repo
// wraps a *sql.DB and translates driver conditions into the sentinel
// errors below so handlers and services can branch with errors.Is.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrUserNotFound is returned when no users row matches.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when inserting a user whose email is taken.
	ErrEmailExists = errors.New("email already exists")
	// ErrStoreNotFound is returned when no stores row matches.
	ErrStoreNotFound = errors.New("store not found")
	// ErrRatingNotFound is returned when the (user, store) pair has no rating.
	ErrRatingNotFound = errors.New("rating not found")
	// ErrRatingExists is returned when an insert hits uq_ratings_user_store,
	// i.e. a concurrent submission for the same pair won the race.
	ErrRatingExists = errors.New("rating already exists")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL unique constraint violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// likePattern turns free text into a case-insensitive LIKE substring
// pattern, escaping the wildcard characters so they match literally.
func likePattern(s string) string {
	out := make([]rune, 0, len(s)+2)
	out = append(out, '%')
	for _, r := range s {
		switch r {
		case '\\', '%', '_':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	out = append(out, '%')
	return string(out)
}
