package urlstate

import (
	"net/url"
	"sync"
)

// Store persists the encoded query of a table view
type Store interface {
	Load() url.Values
	Save(values url.Values) error
}

// MemoryStore keeps the query in memory and is safe for concurrent use
type MemoryStore struct {
	mu     sync.RWMutex
	values url.Values
	saves  int
}

// NewMemoryStore starts from initial, which may be nil
func NewMemoryStore(initial url.Values) *MemoryStore {
	return &MemoryStore{values: cloneValues(initial)}
}

func (s *MemoryStore) Load() url.Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneValues(s.values)
}

func (s *MemoryStore) Save(values url.Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = cloneValues(values)
	s.saves++
	return nil
}

// Query returns the stored values as a query string
func (s *MemoryStore) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Encode()
}

// Saves counts calls to Save
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
