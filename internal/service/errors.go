// Package service holds the business rules of the rating system: the
// one-rating-per-pair ledger, store aggregates, the filtered listings and
// the administrator operations.  Services depend on small interfaces that
// the MySQL repositories satisfy, so tests drive them with in-memory fakes.
package service

import (
	"errors"
	"math"
)

var (
	// ErrStoreNotFound means the referenced store does not exist.
	ErrStoreNotFound = errors.New("store not found")
	// ErrOwnerNotFound means a new store names an owner id with no account.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrOwnerRole means a new store names an account that is not a store owner.
	ErrOwnerRole = errors.New("owner must have role OWNER")
	// ErrEmailTaken means an account with the email already exists.
	ErrEmailTaken = errors.New("email already exists")
	// ErrNoOwnedStore means the calling owner has no store yet.
	ErrNoOwnedStore = errors.New("no store registered for this owner")
	// ErrInvalidRole means an account was requested with an unknown role.
	ErrInvalidRole = errors.New("invalid role")
)

// roundOne rounds half away from zero to one decimal place, so a mean of
// 3.333 reports 3.3 and 3.25 reports 3.3.
func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
