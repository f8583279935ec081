package model

import "time"

// Store represents a rated business owned by a single user.  Stores are
// created by administrators and are not edited afterwards.  This struct
// corresponds to a row in the `stores` table.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – users.id of the store owner.
//  Name      – store name (20–60 characters).
//  Email     – contact email of the store.
//  Address   – postal address (up to 400 characters).
type Store struct {
	ID        uint64    `json:"id"`
	OwnerID   uint64    `json:"owner_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreRef is the identifying subset of a store embedded in other payloads.
type StoreRef struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// StoreListing is one row of the store browser.  OverallRating is the
// store average (0 when unrated); UserRating is the viewer's own score.
type StoreListing struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Email         string  `json:"email"`
	OverallRating float64 `json:"overall_rating"`
	UserRating    *int    `json:"user_rating"`
}
