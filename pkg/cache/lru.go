package cache

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a thread-safe, fixed-capacity least-recently-used cache.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List
	onEvict  func(K, V)
	pinned   func(K, V) bool
}

// NewLRU creates a cache holding at most capacity unpinned entries.
// Panics when capacity is not positive.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		panic("cache: LRU capacity must be positive")
	}
	return &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
}

// OnEvict registers a callback invoked for entries dropped due to capacity.
// It runs under the cache lock and must not call back into the cache.
func (c *LRU[K, V]) OnEvict(fn func(K, V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// PinIf registers a predicate that protects entries from eviction while it
// reports true. When every candidate is pinned the cache grows past its
// capacity and shrinks back on later insertions.
// The predicate runs under the cache lock and must not call back into the cache.
func (c *LRU[K, V]) PinIf(fn func(K, V) bool) {
	c.mu.Lock()
	c.pinned = fn
	c.mu.Unlock()
}

// Get returns the value for key and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put stores value under key, evicting least recently used entries when full.
// Returns the previous value if key was present.
func (c *LRU[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		e := el.Value.(*entry[K, V])
		old := e.value
		e.value = value
		return old, true
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	c.evict()

	var zero V
	return zero, false
}

// Remove deletes key without invoking the eviction callback.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.items, key)
	return true
}

// Len returns the number of cached entries, pinned ones included.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// evict drops unpinned entries from the back until the cache fits.
// The newest entry is never a candidate. Caller must hold c.mu.
func (c *LRU[K, V]) evict() {
	el := c.order.Back()
	for c.order.Len() > c.capacity && el != nil && el != c.order.Front() {
		prev := el.Prev()
		e := el.Value.(*entry[K, V])
		if c.pinned == nil || !c.pinned(e.key, e.value) {
			c.order.Remove(el)
			delete(c.items, e.key)
			if c.onEvict != nil {
				c.onEvict(e.key, e.value)
			}
		}
		el = prev
	}
}
