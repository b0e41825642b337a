// Package usage tracks quota consumption per member and tier.
//
// A Tracker owns one usage record (resources, downloads and goals counters
// plus the time of the last monthly reset). Limits come from the membership
// tier table; the tracker only counts. Records are persisted through the
// Store port after every mutation:
//
//	store := usage.NewMemoryStore() // or redis, pg, mongo, sqlite stores
//	t := usage.NewTracker(ctx, store, userID, membership.TierBasic)
//
//	if err := t.UseFeature(ctx, membership.FeatureResources); errors.Is(err, usage.ErrLimitExceeded) {
//	    // show the upgrade prompt
//	}
//
// ResetMonthlyUsage clears resources and downloads once per calendar month.
// Goals are never reset.
//
// Manager caches trackers in an LRU and is the entry point for servers:
//
//	m := usage.NewManager(store, usage.WithObserver(metrics), usage.WithLogger(log))
//	remaining, err := m.Use(ctx, userID, tier, membership.FeatureDownloads)
//
//	err = m.Do(ctx, userID, tier, func(t *usage.Tracker) error {
//	    return t.UseFeature(ctx, membership.FeatureGoals)
//	})
//
// The manager never holds two trackers for one key. Trackers in use by a
// call, or whose last store write failed, stay loaded even past the cache
// size, so counters are never lost to eviction.
//
// Records are keyed by member and tier, so two members on the same tier never
// share counters. Processes sharing a backend do read-modify-write on the
// whole record; concurrent writers for the same member may lose increments.
package usage
