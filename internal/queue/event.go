// Package queue carries rating events over RabbitMQ: the publisher used by
// the rating service and the audit consumer that records them.
package queue

import (
	"fmt"
	"time"
)

// RatingSubmittedEvent is published after a rating row was inserted or
// updated.  Created distinguishes a first submission from a resubmission.
type RatingSubmittedEvent struct {
	RatingID    uint64 `json:"rating_id"`
	UserID      uint64 `json:"user_id"`
	StoreID     uint64 `json:"store_id"`
	Score       int    `json:"rating"`
	HasFeedback bool   `json:"has_feedback"`
	Created     bool   `json:"created"`
	SubmittedAt string `json:"submitted_at"`
}

// NewRatingSubmittedEvent stamps the event with at in RFC 3339 UTC.
func NewRatingSubmittedEvent(ratingID, userID, storeID uint64, score int, hasFeedback, created bool, at time.Time) RatingSubmittedEvent {
	return RatingSubmittedEvent{
		RatingID:    ratingID,
		UserID:      userID,
		StoreID:     storeID,
		Score:       score,
		HasFeedback: hasFeedback,
		Created:     created,
		SubmittedAt: at.UTC().Format(time.RFC3339),
	}
}

// AuditLine renders the single line the consumer appends to the audit log.
func (ev RatingSubmittedEvent) AuditLine() string {
	action := "updated"
	if ev.Created {
		action = "created"
	}
	return fmt.Sprintf("[%s] Rating %s | rating_id=%d | user_id=%d | store_id=%d | rating=%d | feedback=%t\n",
		ev.SubmittedAt, action, ev.RatingID, ev.UserID, ev.StoreID, ev.Score, ev.HasFeedback)
}
