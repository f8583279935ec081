// Package cache tracks the generation counter that versions every cached
// listing response.  Writes bump the counter; readers fold the current
// value into their cache keys, so entries written before a bump are never
// served again and simply age out through their TTL.
package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Generation is a Redis-backed counter.  A nil *Generation, or one built
// with a nil client, reports generation 0 and ignores bumps.
type Generation struct {
	rdb *redis.Client
	key string
}

// NewGeneration returns a counter stored under key.
func NewGeneration(rdb *redis.Client, key string) *Generation {
	return &Generation{rdb: rdb, key: key}
}

// Current returns the counter value, 0 when it was never bumped.
func (g *Generation) Current(ctx context.Context) (int64, error) {
	if g == nil || g.rdb == nil {
		return 0, nil
	}
	n, err := g.rdb.Get(ctx, g.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Bump advances the counter, orphaning every cached response.
func (g *Generation) Bump(ctx context.Context) error {
	if g == nil || g.rdb == nil {
		return nil
	}
	return g.rdb.Incr(ctx, g.key).Err()
}
