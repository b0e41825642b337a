package usage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/memberkit/pkg/logger"
	"github.com/dmitrymomot/memberkit/pkg/membership"
)

// Tracker accounts quota consumption for one member on one tier.
//
// The in-memory record is authoritative for the tracker's lifetime. Every
// mutation is written through to the Store before the call returns; write
// failures are logged and do not roll back the in-memory state.
type Tracker struct {
	mu      sync.Mutex
	record  Record
	unsaved bool

	store  Store
	key    string
	userID string
	tier   membership.Tier

	table     membership.Table
	now       func() time.Time
	log       *slog.Logger
	observers observers
}

// NewTracker loads the member's record from store, or starts from zero
// counters with the last reset stamped now when none exists. Unreadable or
// corrupted records are logged and replaced by a fresh one.
// Panics if store is nil.
func NewTracker(ctx context.Context, store Store, userID string, tier membership.Tier, opts ...Option) *Tracker {
	if store == nil {
		panic("usage: Store is required")
	}
	return newTracker(ctx, store, userID, tier, newOptions(opts))
}

func newTracker(ctx context.Context, store Store, userID string, tier membership.Tier, o options) *Tracker {
	t := &Tracker{
		store:     store,
		key:       Key(userID, tier),
		userID:    userID,
		tier:      tier,
		table:     o.table,
		now:       o.now,
		log:       o.log,
		observers: o.observers,
	}
	t.record = t.load(ctx)
	return t
}

func (t *Tracker) load(ctx context.Context) Record {
	raw, err := t.store.Get(ctx, t.key)
	if err != nil {
		t.log.WarnContext(ctx, "usage record unavailable, starting from zero",
			logger.UserID(t.userID), logger.Tier(t.tier),
			logger.Error(errors.Join(ErrFailedToLoadRecord, err)))
		return newRecord(t.now())
	}
	if raw == nil {
		return newRecord(t.now())
	}

	rec, err := DecodeRecord(raw)
	if err != nil {
		t.log.WarnContext(ctx, "usage record corrupted, starting from zero",
			logger.UserID(t.userID), logger.Tier(t.tier), logger.Error(err))
		return newRecord(t.now())
	}
	return rec
}

// persist writes the current record. Caller must hold t.mu.
func (t *Tracker) persist(ctx context.Context) {
	raw, err := EncodeRecord(t.record)
	if err == nil {
		err = t.store.Set(ctx, t.key, raw)
	}
	t.unsaved = err != nil
	if err != nil {
		t.log.ErrorContext(ctx, "failed to persist usage record",
			logger.UserID(t.userID), logger.Tier(t.tier),
			logger.Error(errors.Join(ErrFailedToSaveRecord, err)))
	}
}

// Unsaved reports whether the last write to the store failed, leaving the
// in-memory record ahead of the persisted one.
func (t *Tracker) Unsaved() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unsaved
}

// UserID returns the member the tracker belongs to.
func (t *Tracker) UserID() string { return t.userID }

// Tier returns the tier limits are resolved against.
func (t *Tracker) Tier() membership.Tier { return t.tier }

// CanUseFeature reports whether one more use of feature is permitted.
func (t *Tracker) CanUseFeature(feature membership.Feature) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canUse(feature)
}

func (t *Tracker) canUse(feature membership.Feature) bool {
	limit := t.table.GetFeatureLimit(t.tier, feature)
	if limit == membership.Unlimited {
		return true
	}
	return t.record.Count(feature) < limit
}

// UseFeature records one use of feature and persists the record.
// It returns ErrLimitExceeded, leaving the counter untouched, when the
// quota is exhausted. Permitted features without a counter (boolean
// capabilities) succeed without recording anything.
func (t *Tracker) UseFeature(ctx context.Context, feature membership.Feature) error {
	t.mu.Lock()
	limit := t.table.GetFeatureLimit(t.tier, feature)
	ev := t.event(feature, limit)

	if !t.canUse(feature) {
		t.mu.Unlock()
		t.observers.UsageDenied(ctx, ev)
		return ErrLimitExceeded
	}

	counter := t.record.counter(feature)
	if counter == nil {
		t.mu.Unlock()
		return nil
	}

	*counter++
	t.persist(ctx)
	ev.Count = *counter
	exhausted := limit != membership.Unlimited && *counter >= limit
	t.mu.Unlock()

	t.observers.FeatureUsed(ctx, ev)
	if exhausted {
		t.observers.LimitReached(ctx, ev)
	}
	return nil
}

// GetRemainingUses returns how many uses of feature are left, or membership.Unlimited.
func (t *Tracker) GetRemainingUses(feature membership.Feature) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.table.GetRemainingUsage(t.tier, feature, t.record.Count(feature))
}

// Usage returns the current counter for feature.
func (t *Tracker) Usage(feature membership.Feature) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record.Count(feature)
}

// LastReset returns when the monthly counters were last cleared.
func (t *Tracker) LastReset() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record.LastReset
}

// ResetMonthlyUsage clears the resources and downloads counters when the
// calendar month (UTC) differs from the month of the last reset. Goals are
// long-lived objectives and are never reset. Returns true if a reset happened;
// repeated calls within the same month are no-ops.
func (t *Tracker) ResetMonthlyUsage(ctx context.Context) bool {
	t.mu.Lock()
	now := t.now()
	if sameMonth(t.record.LastReset, now) {
		t.mu.Unlock()
		return false
	}

	t.record.Resources = 0
	t.record.Downloads = 0
	t.record.LastReset = now
	t.persist(ctx)
	ev := t.event("", 0)
	ev.At = now
	t.mu.Unlock()

	t.observers.UsageReset(ctx, ev)
	return true
}

func sameMonth(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// event builds an observer event. Caller must hold t.mu.
func (t *Tracker) event(feature membership.Feature, limit int64) Event {
	return Event{
		UserID:  t.userID,
		Tier:    t.tier,
		Feature: feature,
		Count:   t.record.Count(feature),
		Limit:   limit,
		At:      t.now(),
	}
}

// FeatureUsage is the usage state of a single quota feature.
type FeatureUsage struct {
	Feature    membership.Feature `json:"feature"`
	Current    int64              `json:"current"`
	Limit      int64              `json:"limit"`
	Remaining  int64              `json:"remaining"`
	Percentage int                `json:"percentage"` // 0-100, or -1 for unlimited
}

// Summary is a point-in-time view of a tracker, suitable for dashboards.
type Summary struct {
	UserID    string          `json:"user_id"`
	Tier      membership.Tier `json:"tier"`
	LastReset time.Time       `json:"last_reset"`
	Features  []FeatureUsage  `json:"features"`
}

// Snapshot returns the usage of every quota feature.
func (t *Tracker) Snapshot() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{
		UserID:    t.userID,
		Tier:      t.tier,
		LastReset: t.record.LastReset,
		Features:  make([]FeatureUsage, 0, len(membership.QuotaFeatures())),
	}
	for _, f := range membership.QuotaFeatures() {
		current := t.record.Count(f)
		limit := t.table.GetFeatureLimit(t.tier, f)
		s.Features = append(s.Features, FeatureUsage{
			Feature:    f,
			Current:    current,
			Limit:      limit,
			Remaining:  t.table.GetRemainingUsage(t.tier, f, current),
			Percentage: percentage(current, limit),
		})
	}
	return s
}

func percentage(used, limit int64) int {
	if limit == membership.Unlimited {
		return -1
	}
	if limit == 0 {
		return 100
	}
	return min(int((used*100)/limit), 100)
}
