package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/queue"
	"github.com/iliyamo/store-rating/internal/repository"
)

type pair struct{ user, store uint64 }

// memLedger is an in-memory RatingLedger that enforces the unique pair the
// way the ratings table does.
type memLedger struct {
	mu     sync.Mutex
	rows   map[pair]*model.Rating
	nextID uint64
	clock  time.Time

	// hideNext makes the next GetByUserAndStore miss, simulating a
	// concurrent submission that committed between lookup and insert.
	hideNext bool
	writes   int
}

func newMemLedger() *memLedger {
	return &memLedger{rows: map[pair]*model.Rating{}, clock: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *memLedger) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memLedger) GetByUserAndStore(_ context.Context, userID, storeID uint64) (*model.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hideNext {
		m.hideNext = false
		return nil, repository.ErrRatingNotFound
	}
	r, ok := m.rows[pair{userID, storeID}]
	if !ok {
		return nil, repository.ErrRatingNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memLedger) Create(_ context.Context, r *model.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := pair{r.UserID, r.StoreID}
	if _, ok := m.rows[k]; ok {
		return repository.ErrRatingExists
	}
	m.nextID++
	now := m.tick()
	r.ID, r.CreatedAt, r.UpdatedAt = m.nextID, now, now
	cp := *r
	m.rows[k] = &cp
	m.writes++
	return nil
}

func (m *memLedger) Update(_ context.Context, r *model.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[pair{r.UserID, r.StoreID}]
	if !ok {
		return repository.ErrRatingNotFound
	}
	cur.Score, cur.Feedback, cur.UpdatedAt = r.Score, r.Feedback, m.tick()
	*r = *cur
	m.writes++
	return nil
}

func (m *memLedger) ListByUser(_ context.Context, userID uint64) ([]model.RatingWithStore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.RatingWithStore{}
	for k, r := range m.rows {
		if k.user == userID {
			out = append(out, model.RatingWithStore{Rating: *r, Store: model.StoreRef{ID: k.store}})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memLedger) ListByStore(_ context.Context, storeID uint64) ([]model.StoreReview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.StoreReview{}
	for k, r := range m.rows {
		if k.store == storeID {
			out = append(out, model.StoreReview{Rating: *r, User: model.Reviewer{ID: k.user}})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memLedger) StoreAggregate(_ context.Context, storeID uint64) (float64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum, n int64
	for k, r := range m.rows {
		if k.store == storeID {
			sum += int64(r.Score)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

func (m *memLedger) countPair(userID, storeID uint64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[pair{userID, storeID}]; ok {
		return 1
	}
	return 0
}

type memStores struct {
	byID map[uint64]*model.Store
}

func (m *memStores) GetByID(_ context.Context, id uint64) (*model.Store, error) {
	if s, ok := m.byID[id]; ok {
		return s, nil
	}
	return nil, repository.ErrStoreNotFound
}

func (m *memStores) FirstByOwner(_ context.Context, ownerID uint64) (*model.Store, error) {
	var best *model.Store
	for _, s := range m.byID {
		if s.OwnerID == ownerID && (best == nil || s.ID < best.ID) {
			best = s
		}
	}
	if best == nil {
		return nil, repository.ErrStoreNotFound
	}
	return best, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.RatingSubmittedEvent
	err    error
}

func (p *recordingPublisher) PublishRatingSubmitted(_ context.Context, ev queue.RatingSubmittedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type countingInvalidator struct {
	mu    sync.Mutex
	bumps int
}

func (c *countingInvalidator) Bump(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bumps++
	return nil
}

var errBoom = errors.New("boom")
