package usage

import (
	"context"
	"sync"

	"github.com/dmitrymomot/memberkit/pkg/cache"
	"github.com/dmitrymomot/memberkit/pkg/logger"
	"github.com/dmitrymomot/memberkit/pkg/membership"
)

// Manager hands out trackers for (member, tier) pairs, keeping recently used
// ones loaded and applying the monthly reset whenever a tracker is requested.
//
// At most one tracker per key is live at a time. A tracker stays cached while
// a call is using it or while its last write to the store failed; only idle,
// persisted trackers are unloaded when the cache is full.
type Manager struct {
	store Store
	opts  options

	mu       sync.Mutex // guards inUse and the load-or-insert sequence
	inUse    map[string]int
	trackers *cache.LRU[string, *Tracker]
}

// NewManager creates a Manager backed by store. Panics if store is nil.
func NewManager(store Store, opts ...Option) *Manager {
	if store == nil {
		panic("usage: Store is required")
	}
	o := newOptions(opts)
	m := &Manager{
		store:    store,
		opts:     o,
		inUse:    make(map[string]int),
		trackers: cache.NewLRU[string, *Tracker](o.cacheSize),
	}
	// Both callbacks run inside trackers.Put, which is only called with m.mu held.
	m.trackers.PinIf(func(key string, t *Tracker) bool {
		return m.inUse[key] > 0 || t.Unsaved()
	})
	m.trackers.OnEvict(func(key string, t *Tracker) {
		o.log.Debug("usage tracker unloaded", logger.UserID(t.UserID()), logger.Tier(t.Tier()))
	})
	return m
}

// Do runs fn with the tracker for userID on tier, loading it on first use.
// The monthly reset is applied before fn runs. The tracker is only valid
// inside fn; it may be unloaded once fn returns.
func (m *Manager) Do(ctx context.Context, userID string, tier membership.Tier, fn func(*Tracker) error) error {
	t, release, err := m.acquire(ctx, userID, tier)
	if err != nil {
		return err
	}
	defer release()

	t.ResetMonthlyUsage(ctx)
	return fn(t)
}

// ResetMonthlyUsage applies the monthly reset to a member's tracker and
// reports whether the counters were cleared.
func (m *Manager) ResetMonthlyUsage(ctx context.Context, userID string, tier membership.Tier) (bool, error) {
	t, release, err := m.acquire(ctx, userID, tier)
	if err != nil {
		return false, err
	}
	defer release()
	return t.ResetMonthlyUsage(ctx), nil
}

// acquire returns the live tracker for the key and marks it in use until
// release is called.
func (m *Manager) acquire(ctx context.Context, userID string, tier membership.Tier) (*Tracker, func(), error) {
	if userID == "" {
		return nil, nil, ErrMissingUserID
	}
	if !tier.Valid() {
		return nil, nil, ErrInvalidTier
	}
	key := Key(userID, tier)

	m.mu.Lock()
	t, ok := m.trackers.Get(key)
	if !ok {
		m.mu.Unlock()
		// Load without holding the lock; if another call won the race the
		// loaded tracker is dropped before anything touched it.
		loaded := newTracker(ctx, m.store, userID, tier, m.opts)
		m.mu.Lock()
		if t, ok = m.trackers.Get(key); !ok {
			t = loaded
			m.trackers.Put(key, t)
		}
	}
	m.inUse[key]++
	m.mu.Unlock()

	var once sync.Once
	return t, func() { once.Do(func() { m.release(key) }) }, nil
}

func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inUse[key]--; m.inUse[key] <= 0 {
		delete(m.inUse, key)
	}
}

// Use records one use of feature and returns the remaining allowance.
func (m *Manager) Use(ctx context.Context, userID string, tier membership.Tier, feature membership.Feature) (int64, error) {
	var remaining int64
	err := m.Do(ctx, userID, tier, func(t *Tracker) error {
		if err := t.UseFeature(ctx, feature); err != nil {
			return err
		}
		remaining = t.GetRemainingUses(feature)
		return nil
	})
	return remaining, err
}

// CanUse reports whether one more use of feature is permitted.
func (m *Manager) CanUse(ctx context.Context, userID string, tier membership.Tier, feature membership.Feature) (bool, error) {
	var ok bool
	err := m.Do(ctx, userID, tier, func(t *Tracker) error {
		ok = t.CanUseFeature(feature)
		return nil
	})
	return ok, err
}

// Summary returns the usage snapshot for a member.
func (m *Manager) Summary(ctx context.Context, userID string, tier membership.Tier) (Summary, error) {
	var s Summary
	err := m.Do(ctx, userID, tier, func(t *Tracker) error {
		s = t.Snapshot()
		return nil
	})
	return s, err
}

// Table returns the tier table limits are resolved against.
// Callers must not modify it.
func (m *Manager) Table() membership.Table {
	return m.opts.table
}

// Loaded returns the number of trackers currently held in memory.
func (m *Manager) Loaded() int {
	return m.trackers.Len()
}
