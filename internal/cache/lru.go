// internal/cache/lru.go
//
// Tiny LRU cache used by the session store and the rate limiter.  No
// external deps; good for a few thousand entries.  All methods are safe for
// concurrent use.
package cache

import (
	"container/list"
	"sync"
)

// LRU is a least-recently-used cache with a fixed capacity.
type LRU[K comparable, V any] struct {
	mu      sync.Mutex
	cap     int
	ll      *list.List
	dict    map[K]*list.Element
	onEvict func(K, V)
}

type pair[K comparable, V any] struct {
	key K
	val V
}

// New returns an LRU with the given capacity.  onEvict, when non-nil, is
// called for every entry dropped by Add or Sweep (not by Remove).  Panics on
// capacity < 1.
func New[K comparable, V any](capacity int, onEvict func(K, V)) *LRU[K, V] {
	if capacity < 1 {
		panic("cache: capacity must be ≥1")
	}
	return &LRU[K, V]{
		cap:     capacity,
		ll:      list.New(),
		dict:    make(map[K]*list.Element, capacity),
		onEvict: onEvict,
	}
}

// Get retrieves a value and marks it MRU.
func (c *LRU[K, V]) Get(key K) (val V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, hit := c.dict[key]; hit {
		c.ll.MoveToFront(ele)
		return ele.Value.(pair[K, V]).val, true
	}
	return val, false
}

// Add inserts or updates a value.
func (c *LRU[K, V]) Add(key K, val V) {
	var evicted *pair[K, V]

	c.mu.Lock()
	if ele, hit := c.dict[key]; hit {
		ele.Value = pair[K, V]{key, val}
		c.ll.MoveToFront(ele)
		c.mu.Unlock()
		return
	}
	ele := c.ll.PushFront(pair[K, V]{key, val})
	c.dict[key] = ele
	if c.ll.Len() > c.cap {
		last := c.ll.Back()
		c.ll.Remove(last)
		p := last.Value.(pair[K, V])
		delete(c.dict, p.key)
		evicted = &p
	}
	c.mu.Unlock()

	if evicted != nil && c.onEvict != nil {
		c.onEvict(evicted.key, evicted.val)
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ele, hit := c.dict[key]
	if !hit {
		return false
	}
	c.ll.Remove(ele)
	delete(c.dict, key)
	return true
}

// Sweep walks from the least recently used entry and drops every entry for
// which stale returns true.  It returns the number of entries dropped.
func (c *LRU[K, V]) Sweep(stale func(K, V) bool) int {
	var dropped []pair[K, V]

	c.mu.Lock()
	for ele := c.ll.Back(); ele != nil; {
		prev := ele.Prev()
		p := ele.Value.(pair[K, V])
		if stale(p.key, p.val) {
			c.ll.Remove(ele)
			delete(c.dict, p.key)
			dropped = append(dropped, p)
		}
		ele = prev
	}
	c.mu.Unlock()

	if c.onEvict != nil {
		for _, p := range dropped {
			c.onEvict(p.key, p.val)
		}
	}
	return len(dropped)
}

// Len reports current size.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
