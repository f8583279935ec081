package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating/internal/model"
)

const (
	storeS  = uint64(10)
	ownerO  = uint64(1)
	raterA  = uint64(2)
	raterB  = uint64(3)
	missing = uint64(404)
)

func newRatingFixture() (*RatingService, *memLedger, *recordingPublisher, *countingInvalidator) {
	ledger := newMemLedger()
	stores := &memStores{byID: map[uint64]*model.Store{
		storeS: {ID: storeS, OwnerID: ownerO, Name: "Corner Grocery And Deli", Email: "s@example.com", Address: "1 Main St"},
	}}
	pub := &recordingPublisher{}
	inv := &countingInvalidator{}
	return NewRatingService(ledger, stores, pub, inv, zerolog.Nop()), ledger, pub, inv
}

func strp(s string) *string { return &s }

func TestSubmitOrUpdate_ScenarioAveragesAndSingleRow(t *testing.T) {
	svc, ledger, _, _ := newRatingFixture()
	ctx := context.Background()

	r, created, err := svc.SubmitOrUpdate(ctx, SubmitRating{UserID: raterA, StoreID: storeS, Score: 4, Feedback: strp("ok")})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 4, r.Score)
	avg, err := svc.AverageForStore(ctx, storeS)
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)

	r2, created, err := svc.SubmitOrUpdate(ctx, SubmitRating{UserID: raterA, StoreID: storeS, Score: 2, Feedback: strp("changed mind")})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, r.ID, r2.ID)
	assert.Equal(t, 1, ledger.countPair(raterA, storeS))
	assert.Len(t, ledger.rows, 1)
	avg, _ = svc.AverageForStore(ctx, storeS)
	assert.Equal(t, 2.0, avg)

	_, _, err = svc.SubmitOrUpdate(ctx, SubmitRating{UserID: raterB, StoreID: storeS, Score: 5})
	require.NoError(t, err)
	avg, _ = svc.AverageForStore(ctx, storeS)
	assert.Equal(t, 3.5, avg)

	reviewers, err := svc.ReviewersForStore(ctx, storeS)
	require.NoError(t, err)
	require.Len(t, reviewers, 2)
	assert.Equal(t, raterB, reviewers[0].UserID)
	assert.Equal(t, raterA, reviewers[1].UserID)
}

func TestSubmitOrUpdate_LastCallWins(t *testing.T) {
	svc, ledger, _, _ := newRatingFixture()
	ctx := context.Background()

	calls := []SubmitRating{
		{UserID: raterA, StoreID: storeS, Score: 1, Feedback: strp("bad")},
		{UserID: raterA, StoreID: storeS, Score: 5, Feedback: strp("great")},
		{UserID: raterA, StoreID: storeS, Score: 3},
	}
	for _, c := range calls {
		_, _, err := svc.SubmitOrUpdate(ctx, c)
		require.NoError(t, err)
	}

	stored, err := ledger.GetByUserAndStore(ctx, raterA, storeS)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Score)
	assert.Nil(t, stored.Feedback, "omitted feedback clears the previous text")
	assert.Len(t, ledger.rows, 1)
}

func TestSubmitOrUpdate_EmptyFeedbackStoredAsNull(t *testing.T) {
	svc, ledger, _, _ := newRatingFixture()
	ctx := context.Background()

	r, _, err := svc.SubmitOrUpdate(ctx, SubmitRating{UserID: raterA, StoreID: storeS, Score: 4, Feedback: strp("")})
	require.NoError(t, err)
	assert.Nil(t, r.Feedback)

	stored, err := ledger.GetByUserAndStore(ctx, raterA, storeS)
	require.NoError(t, err)
	assert.Nil(t, stored.Feedback)
}

func TestSubmitOrUpdate_WhitespaceFeedbackKeptAsSent(t *testing.T) {
	svc, ledger, pub, _ := newRatingFixture()
	ctx := context.Background()

	_, _, err := svc.SubmitOrUpdate(ctx, SubmitRating{UserID: raterA, StoreID: storeS, Score: 4, Feedback: strp("  ")})
	require.NoError(t, err)

	stored, err := ledger.GetByUserAndStore(ctx, raterA, storeS)
	require.NoError(t, err)
	require.NotNil(t, stored.Feedback)
	assert.Equal(t, "  ", *stored.Feedback)
	assert.True(t, pub.events[0].HasFeedback)
}

func TestSubmitOrUpdate_MissingStoreLeavesLedgerUnchanged(t *testing.T) {
	svc, ledger, pub, inv := newRatingFixture()

	_, _, err := svc.SubmitOrUpdate(context.Background(), SubmitRating{UserID: raterA, StoreID: missing, Score: 4})
	assert.ErrorIs(t, err, ErrStoreNotFound)
	assert.Empty(t, ledger.rows)
	assert.Zero(t, ledger.writes)
	assert.Empty(t, pub.events)
	assert.Zero(t, inv.bumps)
}

func TestSubmitOrUpdate_InsertConflictFallsBackToUpdate(t *testing.T) {
	svc, ledger, pub, _ := newRatingFixture()
	ctx := context.Background()

	_, _, err := svc.SubmitOrUpdate(ctx, SubmitRating{UserID: raterA, StoreID: storeS, Score: 4})
	require.NoError(t, err)

	// The next lookup misses as if a concurrent request inserted the row
	// after this request checked.
	ledger.hideNext = true
	r, created, err := svc.SubmitOrUpdate(ctx, SubmitRating{UserID: raterA, StoreID: storeS, Score: 1, Feedback: strp("race")})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, r.Score)
	assert.Len(t, ledger.rows, 1)
	require.Len(t, pub.events, 2)
	assert.False(t, pub.events[1].Created)
}

func TestSubmitOrUpdate_ConcurrentSubmissionsKeepOneRow(t *testing.T) {
	svc, ledger, _, _ := newRatingFixture()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, _, err := svc.SubmitOrUpdate(ctx, SubmitRating{UserID: raterA, StoreID: storeS, Score: score})
			assert.NoError(t, err)
		}(i%5 + 1)
	}
	wg.Wait()
	assert.Len(t, ledger.rows, 1)
}

func TestSubmitOrUpdate_SideEffects(t *testing.T) {
	svc, _, pub, inv := newRatingFixture()
	pub.err = errBoom

	r, created, err := svc.SubmitOrUpdate(context.Background(), SubmitRating{UserID: raterA, StoreID: storeS, Score: 5, Feedback: strp("nice")})
	require.NoError(t, err, "publish failures do not fail the write")
	assert.True(t, created)
	assert.Equal(t, 1, inv.bumps)
	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, r.ID, ev.RatingID)
	assert.Equal(t, storeS, ev.StoreID)
	assert.True(t, ev.HasFeedback)
	assert.True(t, ev.Created)
}

func TestAverageForStore_Rounding(t *testing.T) {
	cases := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"no ratings", nil, 0},
		{"five and four", []int{5, 4}, 4.5},
		{"repeating third", []int{3, 3, 4}, 3.3},
		{"two thirds", []int{4, 4, 5}, 4.3},
		{"rounds up", []int{5, 5, 4}, 4.7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _, _ := newRatingFixture()
			for i, s := range tc.scores {
				_, _, err := svc.SubmitOrUpdate(context.Background(), SubmitRating{UserID: uint64(100 + i), StoreID: storeS, Score: s})
				require.NoError(t, err)
			}
			got, err := svc.AverageForStore(context.Background(), storeS)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestListForRater(t *testing.T) {
	svc, _, _, _ := newRatingFixture()
	ctx := context.Background()

	got, err := svc.ListForRater(ctx, raterA)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, _, err = svc.SubmitOrUpdate(ctx, SubmitRating{UserID: raterA, StoreID: storeS, Score: 4})
	require.NoError(t, err)
	got, err = svc.ListForRater(ctx, raterA)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, storeS, got[0].Store.ID)
}

func TestDashboardForOwner(t *testing.T) {
	svc, _, _, _ := newRatingFixture()
	ctx := context.Background()

	_, err := svc.DashboardForOwner(ctx, raterA)
	assert.ErrorIs(t, err, ErrNoOwnedStore)

	d, err := svc.DashboardForOwner(ctx, ownerO)
	require.NoError(t, err)
	assert.Equal(t, storeS, d.Store.ID)
	assert.Equal(t, 0.0, d.AverageRating)
	assert.Empty(t, d.Reviewers)

	for _, s := range []SubmitRating{{UserID: raterA, StoreID: storeS, Score: 3}, {UserID: raterB, StoreID: storeS, Score: 4}} {
		_, _, err := svc.SubmitOrUpdate(ctx, s)
		require.NoError(t, err)
	}
	d, err = svc.DashboardForOwner(ctx, ownerO)
	require.NoError(t, err)
	assert.Equal(t, 3.5, d.AverageRating)
	assert.Equal(t, 2, d.TotalRatings)
	assert.Equal(t, raterB, d.Reviewers[0].UserID)
}

func TestRoundOne(t *testing.T) {
	assert.Equal(t, 3.3, roundOne(10.0/3.0))
	assert.Equal(t, 3.7, roundOne(11.0/3.0))
	assert.Equal(t, 0.0, roundOne(0))
}
