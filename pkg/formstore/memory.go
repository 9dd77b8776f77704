package formstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/form"
)

type memoryEntry struct {
	snapshot  form.Snapshot
	expiresAt time.Time
}

// MemoryStore keeps snapshots in process memory. Entries older than the TTL
// are treated as missing and removed by a background sweep.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]memoryEntry

	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) { m.now = now }
}

// NewMemoryStore creates a store. A ttl of zero keeps snapshots forever.
func NewMemoryStore(ttl time.Duration, opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if ttl > 0 {
		m.wg.Add(1)
		go m.sweep(ttl)
	}
	return m
}

func (m *MemoryStore) Save(_ context.Context, s form.Snapshot) error {
	if err := check(s); err != nil {
		return err
	}
	e := memoryEntry{snapshot: cloneSnapshot(s)}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[s.ID] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (form.Snapshot, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok || m.expired(e) {
		return form.Snapshot{}, ErrSnapshotNotFound
	}
	return cloneSnapshot(e.snapshot), nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Purge removes expired entries and returns how many were removed.
func (m *MemoryStore) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

// Close stops the background sweep.
func (m *MemoryStore) Close() error {
	m.once.Do(func() { close(m.stop) })
	m.wg.Wait()
	return nil
}

func (m *MemoryStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}

func (m *MemoryStore) sweep(every time.Duration) {
	defer m.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.Purge()
		}
	}
}

func cloneSnapshot(s form.Snapshot) form.Snapshot {
	s.FormData = maps.Clone(s.FormData)
	if s.Fields != nil {
		fields := make(map[string]field.State, len(s.Fields))
		maps.Copy(fields, s.Fields)
		s.Fields = fields
	}
	return s
}
