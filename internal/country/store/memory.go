package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"persons/internal/country/models"
	"persons/pkg/platform/sentinel"
)

// InMemory is a thread-safe country store. Names are indexed lowercased so
// uniqueness and lookups are case-insensitive.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*models.Country
	byName map[string]uuid.UUID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[uuid.UUID]*models.Country),
		byName: make(map[string]uuid.UUID),
	}
}

// CreateIfNameAvailable inserts c unless its name is taken.
func (s *InMemory) CreateIfNameAvailable(_ context.Context, c *models.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(c.Name)
	if _, taken := s.byName[key]; taken {
		return sentinel.ErrAlreadyUsed
	}
	if _, exists := s.byID[c.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	cp := *c
	s.byID[c.ID] = &cp
	s.byName[key] = c.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *InMemory) FindByName(_ context.Context, name string) (*models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

// List returns all countries ordered by name.
func (s *InMemory) List(_ context.Context) ([]*models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Country, 0, len(s.byID))
	for _, c := range s.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}
