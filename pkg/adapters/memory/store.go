package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/normsuite/pkg/domain"
)

// Store implements ports.SuiteStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Snapshot),
	}
}

func clone(s *domain.Snapshot) *domain.Snapshot {
	c := *s
	c.Actions = make([]domain.Action, len(s.Actions))
	for i, a := range s.Actions {
		c.Actions[i] = domain.NewAction(a.Path...)
	}
	c.Prior = s.Prior.Clone()
	c.Masses = s.Masses.Clone()
	return &c
}

// Save persists the snapshot in memory.
func (s *Store) Save(ctx context.Context, suiteID string, snapshot *domain.Snapshot) error {
	copied := clone(snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[suiteID] = copied
	return nil
}

// Load retrieves a copy of the snapshot so callers can't mutate the store.
func (s *Store) Load(ctx context.Context, suiteID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[suiteID]
	if !ok {
		return nil, domain.ErrSuiteNotFound
	}
	return clone(snap), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, suiteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, suiteID)
	return nil
}

// List returns the stored suite IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
