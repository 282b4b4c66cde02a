package services

import (
	"sync"

	"github.com/google/uuid"

	apperrors "hklcompare/internal/errors"
)

// ComparisonStore is a bounded in-memory store of comparisons. When full,
// the oldest entry is evicted.
type ComparisonStore struct {
	mu       sync.RWMutex
	capacity int
	byID     map[string]*Comparison
	order    []string // oldest first
}

// NewComparisonStore creates a store holding at most capacity comparisons.
func NewComparisonStore(capacity int) *ComparisonStore {
	if capacity < 1 {
		capacity = 1
	}
	return &ComparisonStore{
		capacity: capacity,
		byID:     make(map[string]*Comparison),
	}
}

// Put assigns an ID when missing and stores c.
func (s *ComparisonStore) Put(c *Comparison) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, exists := s.byID[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.byID[c.ID] = c

	for len(s.order) > s.capacity {
		delete(s.byID, s.order[0])
		s.order = s.order[1:]
	}
	return c.ID
}

// Get retrieves a comparison by ID
func (s *ComparisonStore) Get(id string) (*Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("comparison").WithContext("id", id)
	}
	return c, nil
}

// List returns the stored comparisons, newest first.
func (s *ComparisonStore) List() []*Comparison {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Comparison, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.byID[s.order[i]])
	}
	return out
}

// Delete removes a comparison.
func (s *ComparisonStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return apperrors.NewNotFoundError("comparison").WithContext("id", id)
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len is the number of stored comparisons.
func (s *ComparisonStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
