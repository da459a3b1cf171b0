// Package cache is the in-process read-through cache placed in front of the
// player list and the ranking snapshots.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/riskibarqy/futsal-club/internal/platform/resilience"
)

// Lookup results reported to a LookupObserver.
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultShared = "shared"
	ResultError  = "error"
)

// LookupObserver is told how each GetOrLoad call was served.
type LookupObserver interface {
	ObserveCacheLookup(cache, result string)
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is a typed TTL cache. Concurrent misses on one key share a single
// loader call.
type Store[V any] struct {
	name     string
	ttl      time.Duration
	observer LookupObserver
	now      func() time.Time

	mu      sync.RWMutex
	entries map[string]entry[V]
	// generations is bumped by Delete; a load only stores its result when
	// the generation it started under is still current.
	generations map[string]uint64
	flight      resilience.SingleFlight[V]
}

// NewStore creates a store; ttl <= 0 keeps entries until deleted. observer
// may be nil.
func NewStore[V any](name string, ttl time.Duration, observer LookupObserver) *Store[V] {
	return &Store[V]{
		name:     name,
		ttl:      ttl,
		observer: observer,
		now:      time.Now,
		entries:  make(map[string]entry[V]),

		generations: make(map[string]uint64),
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.expired(e) {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && s.expired(cur) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

// Delete drops key and detaches any load in flight for it, so that load
// cannot write its result back.
func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.generations[key]++
	s.mu.Unlock()
	s.flight.Forget(key)
}

func (s *Store[V]) generation(key string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generations[key]
}

// setIfCurrent stores value only if no Delete ran since gen was read.
func (s *Store[V]) setIfCurrent(key string, gen uint64, value V) {
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	if s.generations[key] == gen {
		s.entries[key] = e
	}
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value or runs loader once per key across
// concurrent callers. Failed loads are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, errors.New("cache loader is required")
	}

	if value, ok := s.Get(ctx, key); ok {
		s.observe(ResultHit)
		return value, nil
	}

	value, err, shared := s.flight.Do(key, func() (V, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		gen := s.generation(key)
		loaded, err := loader(ctx)
		if err != nil {
			return zero, err
		}
		s.setIfCurrent(key, gen, loaded)
		return loaded, nil
	})

	switch {
	case err != nil:
		s.observe(ResultError)
		return zero, err
	case shared:
		s.observe(ResultShared)
	default:
		s.observe(ResultMiss)
	}
	return value, nil
}

func (s *Store[V]) expired(e entry[V]) bool {
	return s.ttl > 0 && !e.expiresAt.After(s.now())
}

func (s *Store[V]) observe(result string) {
	if s.observer != nil {
		s.observer.ObserveCacheLookup(s.name, result)
	}
}
