// Package cache holds the short-lived response cache used in front of the
// upstream draft API. Entries expire after a fixed TTL; losing the cache only
// costs extra upstream calls.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultTTL is how long upstream responses are reused.
const DefaultTTL = 5 * time.Minute

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adp_response_cache_hits_total",
		Help: "Response cache lookups that returned a fresh entry",
	}, []string{"backend"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adp_response_cache_misses_total",
		Help: "Response cache lookups that missed or found an expired entry",
	}, []string{"backend"})
)

// Cache stores raw upstream responses by key.
type Cache interface {
	// Get returns the value for key if a fresh entry exists.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Put stores value as fetched at storedAt.
	Put(ctx context.Context, key string, value []byte, storedAt time.Time)
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

type entry struct {
	value    []byte
	storedAt time.Time
}

// Memory is an in-process Cache.
type Memory struct {
	ttl   time.Duration
	now   Clock
	mu    sync.RWMutex
	items map[string]entry
}

// NewMemory returns an in-process cache. A nil clock uses time.Now.
func NewMemory(ttl time.Duration, clock Clock) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &Memory{
		ttl:   ttl,
		now:   clock,
		items: make(map[string]entry),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || m.now().Sub(e.storedAt) >= m.ttl {
		cacheMisses.WithLabelValues("memory").Inc()
		return nil, false
	}
	cacheHits.WithLabelValues("memory").Inc()
	return e.value, true
}

func (m *Memory) Put(_ context.Context, key string, value []byte, storedAt time.Time) {
	m.mu.Lock()
	m.items[key] = entry{value: value, storedAt: storedAt}
	m.mu.Unlock()
}

// Prune drops expired entries and returns how many were removed.
func (m *Memory) Prune() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for k, e := range m.items {
		if now.Sub(e.storedAt) >= m.ttl {
			delete(m.items, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, fresh or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Nop) Put(context.Context, string, []byte, time.Time) {}
