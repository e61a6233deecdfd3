package checkout

import (
	"context"
	"sync"
	"time"
)

// Store persists selections per visitor.
type Store interface {
	// Load returns the visitor's selection, or false when there is none.
	Load(ctx context.Context, visitorID string) (Selection, bool, error)
	Save(ctx context.Context, visitorID string, s Selection) error
	Delete(ctx context.Context, visitorID string) error
}

// MemoryStore keeps selections in process memory. Entries expire after ttl
// without a save.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	selection Selection
	expiresAt time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a MemoryStore. A non-positive ttl keeps entries forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Load(_ context.Context, visitorID string) (Selection, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[visitorID]
	if !ok {
		return Selection{}, false, nil
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.entries, visitorID)
		return Selection{}, false, nil
	}
	return e.selection, true, nil
}

func (m *MemoryStore) Save(_ context.Context, visitorID string, s Selection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{selection: s}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[visitorID] = e
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, visitorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, visitorID)
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, e := range m.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Sweep()
		}
	}
}
