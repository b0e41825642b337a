// Package cache provides a generic, thread-safe LRU (Least Recently Used)
// cache.
//
// The cache evicts the least recently used entries once it grows past its
// capacity. Entries can be pinned so that values still in use, or values
// holding state that is not saved anywhere else, are never dropped.
//
// # Key Features
//
//   - Generic over any comparable key and any value type
//   - Mutex-based synchronization; safe for concurrent use
//   - O(1) Get, Put and Remove
//   - Optional eviction callback
//   - Optional pin predicate that protects entries from eviction
//
// # Usage
//
//	c := cache.NewLRU[string, *usage.Tracker](1024)
//
//	c.Put("usage:u1:basic", tracker)
//	if t, ok := c.Get("usage:u1:basic"); ok {
//	    // t is now the most recently used entry
//	}
//	c.Remove("usage:u1:basic")
//
// # Eviction callbacks
//
//	c.OnEvict(func(key string, t *usage.Tracker) {
//	    log.Debug("tracker unloaded", slog.String("key", key))
//	})
//
// The callback runs under the cache lock and must not call back into the
// cache.
//
// # Pinning
//
//	c.PinIf(func(key string, t *usage.Tracker) bool {
//	    return inUse[key] > 0 || t.Unsaved()
//	})
//
// When the cache is over capacity, Put walks from the least recently used
// end and drops the first unpinned entries it finds. The entry being inserted
// is never a candidate. If everything else is pinned the cache temporarily
// holds more than capacity entries and shrinks back on a later Put, once
// the pins are released. Len reports pinned entries too.
//
// The predicate shares the cache lock with the callback, so it must be cheap
// and must not call back into the cache.
package cache
