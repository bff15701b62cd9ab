// Package cache provides the in-memory read-through cache for query
// results and the generation token used to group-invalidate list entries.
package cache

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catsnatch_cache_hits_total",
		Help: "Cache hits by cache name.",
	}, []string{"cache"})
	missesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catsnatch_cache_misses_total",
		Help: "Cache misses by cache name.",
	}, []string{"cache"})
)

type entry[V any] struct {
	value   V
	token   *Token       // nil when the entry has no invalidation subscription
	touched atomic.Int64 // unix nanos of last access, drives the sliding window
}

// Cache is a TTL'd LRU keyed by composite request strings. The LRU TTL is
// the absolute expiry; every Get additionally enforces a sliding window
// since the last access and, when the entry carries a token, its
// generation. Concurrent misses on one key may race on Set; last write
// wins, which duplicates the upstream read but never corrupts state.
type Cache[V any] struct {
	name    string
	lru     *expirable.LRU[string, *entry[V]]
	sliding time.Duration
	now     func() time.Time
}

// New creates a cache holding up to size entries. Entries expire ttl after
// creation or, independently, after no access within the sliding window.
func New[V any](name string, size int, ttl, sliding time.Duration) *Cache[V] {
	return &Cache[V]{
		name:    name,
		lru:     expirable.NewLRU[string, *entry[V]](size, nil, ttl),
		sliding: sliding,
		now:     time.Now,
	}
}

// Get returns the cached value when the entry is alive: not absolutely
// expired, accessed within the sliding window, and its token (if any) not
// tripped. Any other outcome is a miss and drops the entry.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	e, ok := c.lru.Get(key)
	if !ok {
		missesTotal.WithLabelValues(c.name).Inc()
		return zero, false
	}
	if e.token != nil && e.token.Tripped() {
		c.lru.Remove(key)
		missesTotal.WithLabelValues(c.name).Inc()
		return zero, false
	}
	now := c.now().UnixNano()
	if now-e.touched.Load() > int64(c.sliding) {
		c.lru.Remove(key)
		missesTotal.WithLabelValues(c.name).Inc()
		return zero, false
	}
	e.touched.Store(now)
	hitsTotal.WithLabelValues(c.name).Inc()
	return e.value, true
}

// Set stores value under key, optionally subscribed to an invalidation
// token. A nil token means the entry outlives any number of trips.
func (c *Cache[V]) Set(key string, value V, token *Token) {
	e := &entry[V]{value: value, token: token}
	e.touched.Store(c.now().UnixNano())
	c.lru.Add(key, e)
}

// Len reports the number of live entries, expired ones included until the
// underlying LRU evicts them.
func (c *Cache[V]) Len() int { return c.lru.Len() }
