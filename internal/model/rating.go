package model

import "time"

// Rating is a single user's score for a store, stored in `ratings`.  The
// pair (UserID, StoreID) is unique; resubmitting overwrites Score and
// Feedback of the existing row.
type Rating struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	StoreID   uint64    `json:"store_id"`
	Score     int       `json:"rating"`
	Feedback  *string   `json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingWithStore is a rating annotated with the store it targets.
type RatingWithStore struct {
	Rating
	Store StoreRef `json:"store"`
}

// Reviewer is the public identity of a rater.
type Reviewer struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StoreReview is a rating annotated with who submitted it.
type StoreReview struct {
	Rating
	User Reviewer `json:"user"`
}
