package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	countrymodels "persons/internal/country/models"
	"persons/internal/person/models"
	"persons/pkg/platform/sentinel"
	textutil "persons/pkg/platform/strings"
)

// CountryLookup resolves a country id to its name for the in-memory join.
// Unknown ids resolve to "".
type CountryLookup func(ctx context.Context, id uuid.UUID) string

// CountryFinder is the part of the country store the join needs.
type CountryFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*countrymodels.Country, error)
}

// LookupFrom adapts a country store into a CountryLookup.
func LookupFrom(f CountryFinder) CountryLookup {
	return func(ctx context.Context, id uuid.UUID) string {
		c, err := f.FindByID(ctx, id)
		if err != nil {
			return ""
		}
		return c.Name
	}
}

// InMemory is a thread-safe person store that keeps insertion order.
type InMemory struct {
	mu        sync.RWMutex
	order     []uuid.UUID
	persons   map[uuid.UUID]*models.Person
	countries CountryLookup
}

func NewInMemory(countries CountryLookup) *InMemory {
	if countries == nil {
		countries = func(context.Context, uuid.UUID) string { return "" }
	}
	return &InMemory{
		persons:   make(map[uuid.UUID]*models.Person),
		countries: countries,
	}
}

func (s *InMemory) Create(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.persons[p.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.persons[p.ID] = clonePerson(p)
	s.order = append(s.order, p.ID)
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, id uuid.UUID) (*models.Row, error) {
	s.mu.RLock()
	p, ok := s.persons[id]
	if ok {
		p = clonePerson(p)
	}
	s.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	row := s.join(ctx, p)
	return &row, nil
}

func (s *InMemory) List(ctx context.Context) ([]models.Row, error) {
	return s.Filter(ctx, models.Filter{})
}

// Filter applies a case-insensitive contains match on the selected field.
func (s *InMemory) Filter(ctx context.Context, f models.Filter) ([]models.Row, error) {
	s.mu.RLock()
	snapshot := make([]*models.Person, 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, clonePerson(s.persons[id]))
	}
	s.mu.RUnlock()

	rows := make([]models.Row, 0, len(snapshot))
	for _, p := range snapshot {
		row := s.join(ctx, p)
		if f.MatchesAll() || matches(row, f) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.persons), nil
}

func (s *InMemory) Update(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.persons[p.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.persons[p.ID] = clonePerson(p)
	return nil
}

// Delete reports whether a person was removed.
func (s *InMemory) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.persons[id]; !ok {
		return false, nil
	}
	delete(s.persons, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *InMemory) join(ctx context.Context, p *models.Person) models.Row {
	row := models.Row{Person: p}
	if p.CountryID != nil {
		row.CountryName = s.countries(ctx, *p.CountryID)
	}
	return row
}

func matches(row models.Row, f models.Filter) bool {
	p := row.Person
	switch f.Field {
	case models.SearchPersonName:
		return textutil.ContainsFold(p.Name, f.Term)
	case models.SearchEmail:
		return textutil.ContainsFold(p.Email, f.Term)
	case models.SearchDateOfBirth:
		return p.DateOfBirth != nil && textutil.ContainsFold(p.DateOfBirth.Format(models.DateOfBirthLayout), f.Term)
	case models.SearchGender:
		return textutil.ContainsFold(string(p.Gender), f.Term)
	case models.SearchCountryID:
		return textutil.ContainsFold(row.CountryName, f.Term)
	case models.SearchAddress:
		return textutil.ContainsFold(p.Address, f.Term)
	default:
		return true
	}
}

func clonePerson(p *models.Person) *models.Person {
	cp := *p
	if p.DateOfBirth != nil {
		dob := *p.DateOfBirth
		cp.DateOfBirth = &dob
	}
	if p.CountryID != nil {
		id := *p.CountryID
		cp.CountryID = &id
	}
	return &cp
}
