package moment

import (
	"fmt"
	"sync"
)

// ErrNotFound is returned when a moment ID is unknown.
var ErrNotFound = fmt.Errorf("moment not found")

// Store keeps moments in memory, newest first, evicting the oldest once
// the cap is reached. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	moments map[string]*Moment
	order   []string // insertion order, oldest first
	cap     int
}

// NewStore creates a store holding at most cap moments. cap <= 0 means
// unbounded.
func NewStore(cap int) *Store {
	return &Store{
		moments: make(map[string]*Moment),
		cap:     cap,
	}
}

// Put adds a moment, evicting the oldest if the store is full.
func (s *Store) Put(m *Moment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.moments[m.ID]; !exists {
		s.order = append(s.order, m.ID)
	}
	s.moments[m.ID] = m

	for s.cap > 0 && len(s.order) > s.cap {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.moments, oldest)
	}
}

// Get returns the moment with the given ID.
func (s *Store) Get(id string) (*Moment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.moments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

// List returns summaries of all moments, newest first.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.moments[s.order[i]].Summarize())
	}
	return out
}

// Len reports how many moments are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
