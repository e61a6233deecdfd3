package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// Store keeps bucket state.
type Store interface {
	// Take refills the bucket for key as of now and takes n tokens if it
	// holds enough. remaining is the count left after taking, or the
	// shortfall as a negative number when nothing was taken. refilledAt is
	// the time of the last refill step.
	Take(ctx context.Context, key string, n int, cfg Config, now time.Time) (remaining int, refilledAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

type bucketState struct {
	tokens     int
	refilledAt time.Time
	touchedAt  time.Time
}

// refill adds the tokens earned since s.refilledAt. A full bucket restarts
// its refill clock at now.
func (s *bucketState) refill(cfg Config, now time.Time) {
	steps := int(now.Sub(s.refilledAt) / cfg.RefillInterval)
	if steps <= 0 {
		return
	}
	missing := cfg.Capacity - s.tokens
	if steps*cfg.RefillRate >= missing {
		s.tokens = cfg.Capacity
		s.refilledAt = now
		return
	}
	s.tokens += steps * cfg.RefillRate
	s.refilledAt = s.refilledAt.Add(time.Duration(steps) * cfg.RefillInterval)
}

func (s *bucketState) take(n int) int {
	if s.tokens < n {
		return s.tokens - n
	}
	s.tokens -= n
	return s.tokens
}

// MemoryStore keeps buckets in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketState
	idle    time.Duration
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]*bucketState)}
}

func (m *MemoryStore) Take(_ context.Context, key string, n int, cfg Config, now time.Time) (int, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.idle = max(m.idle, cfg.idleAfter())

	b, ok := m.buckets[key]
	if !ok {
		b = &bucketState{tokens: cfg.Capacity, refilledAt: now}
		m.buckets[key] = b
	}
	b.refill(cfg, now)
	b.touchedAt = now
	return b.take(n), b.refilledAt, nil
}

func (m *MemoryStore) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets, key)
	return nil
}

// Sweep drops buckets untouched for long enough to be full again and
// returns how many were removed.
func (m *MemoryStore) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, b := range m.buckets {
		if now.Sub(b.touchedAt) >= m.idle {
			delete(m.buckets, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked buckets.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}
