// internal/store/memory.go
//
// In-memory keyed store used by the HTTP layer for solver sessions and
// playable games. State is lost when the process restarts.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Entries idle longer than the TTL are dropped by Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Get for unknown or expired ids.
var ErrNotFound = errors.New("not found")

// Store persists values by id.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store[T any] interface {
	Save(ctx context.Context, id string, v T) error
	Get(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
	Len() int
}

type entry[T any] struct {
	v    T
	seen time.Time
}

// Memory is a map-based Store.
type Memory[T any] struct {
	mu    sync.RWMutex
	items map[string]entry[T]
	ttl   time.Duration
	now   func() time.Time
}

// NewMemory constructs an in-memory Store. ttl <= 0 keeps entries forever.
func NewMemory[T any](ttl time.Duration) *Memory[T] {
	return &Memory[T]{items: make(map[string]entry[T]), ttl: ttl, now: time.Now}
}

// Save adds or replaces the value for id.
func (m *Memory[T]) Save(_ context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = entry[T]{v: v, seen: m.now()}
	return nil
}

// Get looks up id.
func (m *Memory[T]) Get(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	e, ok := m.items[id]
	m.mu.RUnlock()
	if !ok || m.expired(e) {
		var zero T
		return zero, ErrNotFound
	}
	return e.v, nil
}

// Delete removes id; deleting a missing id is not an error.
func (m *Memory[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Sweep drops expired entries and returns how many were removed.
func (m *Memory[T]) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.items {
		if m.expired(e) {
			delete(m.items, id)
			n++
		}
	}
	return n
}

func (m *Memory[T]) expired(e entry[T]) bool {
	return m.ttl > 0 && m.now().Sub(e.seen) > m.ttl
}
