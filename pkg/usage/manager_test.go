package usage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/memberkit/pkg/logger"
	"github.com/dmitrymomot/memberkit/pkg/membership"
	"github.com/dmitrymomot/memberkit/pkg/usage"
)

func newManager(store usage.Store, opts ...usage.Option) *usage.Manager {
	opts = append([]usage.Option{usage.WithLogger(logger.Discard())}, opts...)
	return usage.NewManager(store, opts...)
}

func tracker(t *testing.T, m *usage.Manager, userID string, tier membership.Tier) *usage.Tracker {
	t.Helper()
	var tr *usage.Tracker
	require.NoError(t, m.Do(context.Background(), userID, tier, func(got *usage.Tracker) error {
		tr = got
		return nil
	}))
	return tr
}

func TestManager_Do(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns cached tracker", func(t *testing.T) {
		t.Parallel()
		m := newManager(usage.NewMemoryStore())

		a := tracker(t, m, "user-1", membership.TierBasic)
		b := tracker(t, m, "user-1", membership.TierBasic)
		assert.Same(t, a, b)
	})

	t.Run("members on the same tier do not share counters", func(t *testing.T) {
		t.Parallel()
		m := newManager(usage.NewMemoryStore())

		_, err := m.Use(ctx, "alice", membership.TierBasic, membership.FeatureResources)
		require.NoError(t, err)

		bob := tracker(t, m, "bob", membership.TierBasic)
		assert.Zero(t, bob.Usage(membership.FeatureResources))
	})

	t.Run("returns callback error", func(t *testing.T) {
		t.Parallel()
		m := newManager(usage.NewMemoryStore())
		boom := errors.New("boom")

		err := m.Do(ctx, "user-1", membership.TierBasic, func(*usage.Tracker) error { return boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("validates input", func(t *testing.T) {
		t.Parallel()
		m := newManager(usage.NewMemoryStore())
		noop := func(*usage.Tracker) error { return nil }

		err := m.Do(ctx, "", membership.TierBasic, noop)
		assert.ErrorIs(t, err, usage.ErrMissingUserID)

		err = m.Do(ctx, "user-1", membership.Tier("gold"), noop)
		assert.ErrorIs(t, err, usage.ErrInvalidTier)
	})

	t.Run("nil store panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { usage.NewManager(nil) })
	})
}

func TestManager_Use(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newManager(usage.NewMemoryStore())

	for want := int64(2); want >= 0; want-- {
		remaining, err := m.Use(ctx, "user-1", membership.TierBasic, membership.FeatureGoals)
		require.NoError(t, err)
		assert.Equal(t, want, remaining)
	}

	_, err := m.Use(ctx, "user-1", membership.TierBasic, membership.FeatureGoals)
	assert.ErrorIs(t, err, usage.ErrLimitExceeded)

	ok, err := m.CanUse(ctx, "user-1", membership.TierBasic, membership.FeatureGoals)
	require.NoError(t, err)
	assert.False(t, ok)

	remaining, err := m.Use(ctx, "user-1", membership.TierUltimate, membership.FeatureGoals)
	require.NoError(t, err)
	assert.Equal(t, membership.Unlimited, remaining)
}

func TestManager_AppliesMonthlyResetOnLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := usage.NewMemoryStore()
	raw, err := usage.EncodeRecord(usage.Record{
		Resources: 5,
		Downloads: 10,
		Goals:     2,
		LastReset: time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, usage.Key("user-1", membership.TierBasic), raw))

	c := newClock(time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC))
	rec := &recorder{}
	m := newManager(store, usage.WithClock(c.Now), usage.WithObserver(rec))

	s, err := m.Summary(ctx, "user-1", membership.TierBasic)
	require.NoError(t, err)

	counts := make(map[membership.Feature]int64)
	for _, f := range s.Features {
		counts[f.Feature] = f.Current
	}
	assert.Zero(t, counts[membership.FeatureResources])
	assert.Zero(t, counts[membership.FeatureDownloads])
	assert.Equal(t, int64(2), counts[membership.FeatureGoals])
	assert.Len(t, rec.resets, 1)
}

func TestManager_AppliesResetToCachedTracker(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newClock(jan15)
	m := newManager(usage.NewMemoryStore(), usage.WithClock(c.Now))

	_, err := m.Use(ctx, "user-1", membership.TierBasic, membership.FeatureDownloads)
	require.NoError(t, err)

	c.Set(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC))
	tr := tracker(t, m, "user-1", membership.TierBasic)
	assert.Zero(t, tr.Usage(membership.FeatureDownloads))
}

func TestManager_UnloadReloadsFromStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newManager(usage.NewMemoryStore(), usage.WithCacheSize(1))

	_, err := m.Use(ctx, "user-1", membership.TierBasic, membership.FeatureResources)
	require.NoError(t, err)
	first := tracker(t, m, "user-1", membership.TierBasic)

	// Capacity 1: loading another member unloads the idle, persisted user-1.
	tracker(t, m, "user-2", membership.TierBasic)
	assert.Equal(t, 1, m.Loaded())

	again := tracker(t, m, "user-1", membership.TierBasic)
	assert.NotSame(t, first, again)
	assert.Equal(t, int64(1), again.Usage(membership.FeatureResources))
}

func TestManager_KeepsTrackerInUse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newManager(usage.NewMemoryStore(), usage.WithCacheSize(1))

	for range 4 {
		_, err := m.Use(ctx, "alice", membership.TierBasic, membership.FeatureResources)
		require.NoError(t, err)
	}

	err := m.Do(ctx, "alice", membership.TierBasic, func(held *usage.Tracker) error {
		// Another member's request would unload alice if she were idle.
		_, err := m.Use(ctx, "bob", membership.TierBasic, membership.FeatureResources)
		require.NoError(t, err)

		var allowed int
		for range 3 {
			if _, err := m.Use(ctx, "alice", membership.TierBasic, membership.FeatureResources); err == nil {
				allowed++
			}
		}
		assert.Equal(t, 1, allowed, "only one resource left of the Basic allowance")
		assert.Same(t, held, tracker(t, m, "alice", membership.TierBasic))
		return nil
	})
	require.NoError(t, err)
}

func TestManager_KeepsUnsavedTracker(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &MockStore{}
	store.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	store.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("store down"))
	m := newManager(store, usage.WithCacheSize(1))

	for range 5 {
		_, err := m.Use(ctx, "alice", membership.TierBasic, membership.FeatureResources)
		require.NoError(t, err)
	}
	_, err := m.Use(ctx, "alice", membership.TierBasic, membership.FeatureResources)
	require.ErrorIs(t, err, usage.ErrLimitExceeded)

	// Bob's load would unload alice, but her counters only live in memory.
	_, err = m.Use(ctx, "bob", membership.TierBasic, membership.FeatureResources)
	require.NoError(t, err)

	for range 5 {
		_, err := m.Use(ctx, "alice", membership.TierBasic, membership.FeatureResources)
		assert.ErrorIs(t, err, usage.ErrLimitExceeded)
	}
	assert.Equal(t, 2, m.Loaded())
	store.AssertNumberOfCalls(t, "Get", 2)
}

func TestManager_ResetMonthlyUsage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newClock(jan15)
	m := newManager(usage.NewMemoryStore(), usage.WithClock(c.Now))

	_, err := m.Use(ctx, "user-1", membership.TierBasic, membership.FeatureResources)
	require.NoError(t, err)

	reset, err := m.ResetMonthlyUsage(ctx, "user-1", membership.TierBasic)
	require.NoError(t, err)
	assert.False(t, reset, "same month is a no-op")

	c.Set(time.Date(2026, time.March, 3, 8, 0, 0, 0, time.UTC))
	reset, err = m.ResetMonthlyUsage(ctx, "user-1", membership.TierBasic)
	require.NoError(t, err)
	assert.True(t, reset)

	reset, err = m.ResetMonthlyUsage(ctx, "user-1", membership.TierBasic)
	require.NoError(t, err)
	assert.False(t, reset, "second reset in the new month is a no-op")

	_, err = m.ResetMonthlyUsage(ctx, "user-1", membership.Tier("gold"))
	require.ErrorIs(t, err, usage.ErrInvalidTier)
}
