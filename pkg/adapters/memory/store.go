package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/glossa/pkg/domain"
)

// Store implements ports.ModelStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Model
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Model),
	}
}

// Save keeps a copy of the model in memory.
func (s *Store) Save(ctx context.Context, name string, model *domain.Model) error {
	copied := copyModel(model)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load retrieves a copy of the model.
func (s *Store) Load(ctx context.Context, name string) (*domain.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	model, ok := s.data[name]
	if !ok {
		return nil, domain.ErrModelNotFound
	}
	return copyModel(model), nil
}

// Delete removes the model.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored model names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Copy on write and on read so callers can't mutate stored models through pointers.
func copyModel(m *domain.Model) *domain.Model {
	c := *m
	c.Languages = append([]string(nil), m.Languages...)
	c.Corpus = append([]domain.Record(nil), m.Corpus...)
	c.Sealed = append([]byte(nil), m.Sealed...)
	return &c
}
