// Package cache provides the in-memory implementation of the index
// cache port. Entries are keyed by corpus fingerprint and never
// expire: a fingerprint uniquely determines the index it maps to, so a
// stale entry cannot exist, only an unused one.
package cache

import (
	"sync"

	"github.com/bazarlens/bazarlens/index"
)

// Memory is a concurrency-safe fingerprint-to-index cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*index.BM25Index
}

// NewMemory creates an empty in-memory index cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]*index.BM25Index),
	}
}

// Get returns the cached index for the fingerprint, if present.
func (m *Memory) Get(fingerprint string) (*index.BM25Index, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, found := m.entries[fingerprint]
	return idx, found
}

// Put stores an index under the fingerprint, replacing any previous
// entry. Nil indexes are ignored so a failed build can never poison
// the cache.
func (m *Memory) Put(fingerprint string, idx *index.BM25Index) {
	if idx == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[fingerprint] = idx
}

// Len returns the number of cached indexes.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
