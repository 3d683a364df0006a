// Package cache keeps compiled statements keyed by fingerprint.
package cache

import (
	"errors"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is used when a non-positive size is requested.
const DefaultSize = 512

var ErrNotFound = errors.New("cache: key not found")

// CachedQuery is a statement rewritten for a dialect. Tokens lists the
// placeholder tokens in the order their arguments must be passed.
type CachedQuery struct {
	SQL    string
	Tokens []string
}

// Stats reports cache activity.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
}

type StatementCache struct {
	cache     *lru.Cache[uint64, *CachedQuery]
	mu        sync.Mutex
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

func NewStatementCache(size int) *StatementCache {
	if size <= 0 {
		size = DefaultSize
	}
	s := &StatementCache{}
	// only fails for a non-positive size
	s.cache, _ = lru.NewWithEvict(size, func(uint64, *CachedQuery) {
		s.evictions.Add(1)
	})
	return s
}

func (s *StatementCache) Get(key uint64) (*CachedQuery, error) {
	if q, ok := s.cache.Get(key); ok {
		s.hits.Add(1)
		return q, nil
	}
	s.misses.Add(1)
	return nil, ErrNotFound
}

func (s *StatementCache) Set(key uint64, q *CachedQuery) {
	s.cache.Add(key, q)
}

// GetOrCompile returns the cached entry for key, calling compile on a miss.
// Concurrent misses on the same cache compile once.
func (s *StatementCache) GetOrCompile(key uint64, compile func() (*CachedQuery, error)) (*CachedQuery, error) {
	if q, ok := s.cache.Get(key); ok {
		s.hits.Add(1)
		return q, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if q, ok := s.cache.Get(key); ok {
		s.hits.Add(1)
		return q, nil
	}
	s.misses.Add(1)

	q, err := compile()
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, q)
	return q, nil
}

func (s *StatementCache) Stats() Stats {
	return Stats{
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Evictions: s.evictions.Load(),
		Len:       s.cache.Len(),
	}
}

// Purge drops every entry.
func (s *StatementCache) Purge() {
	s.cache.Purge()
}
