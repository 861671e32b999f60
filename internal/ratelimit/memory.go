package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local CounterStore.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]memoryWindow
	now     func() time.Time
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]memoryWindow),
		now:     time.Now,
	}
}

func (m *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = memoryWindow{resetAt: now.Add(window)}
	}
	w.count++
	m.windows[key] = w

	m.gc(now)
	return w.count, w.resetAt, nil
}

// gc drops expired windows once the map grows large.
func (m *MemoryStore) gc(now time.Time) {
	if len(m.windows) < 1024 {
		return
	}
	for k, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, k)
		}
	}
}
