package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"persons/internal/country/models"
	"persons/pkg/platform/sentinel"
)

type CountryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *CountryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestCountryStoreSuite(t *testing.T) {
	suite.Run(t, new(CountryStoreSuite))
}

func newCountry(name string) *models.Country {
	return &models.Country{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
}

func (s *CountryStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds country by ID", func() {
		c := newCountry("Canada")
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, c))

		found, err := s.store.FindByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal("Canada", found.Name)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, uuid.New())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned values are copies", func() {
		c := newCountry("Brazil")
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, c))

		found, err := s.store.FindByID(s.ctx, c.ID)
		s.Require().NoError(err)
		found.Name = "mutated"

		again, err := s.store.FindByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal("Brazil", again.Name)
	})
}

func (s *CountryStoreSuite) TestNameUniqueness() {
	s.Run("enforces case-insensitive uniqueness", func() {
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, newCountry("India")))
		err := s.store.CreateIfNameAvailable(s.ctx, newCountry("INDIA"))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("finds by name case-insensitively", func() {
		c := newCountry("Vietnam")
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, c))

		found, err := s.store.FindByName(s.ctx, " vietnam ")
		s.Require().NoError(err)
		s.Equal(c.ID, found.ID)
	})

	s.Run("concurrent creates with same name admit exactly one", func() {
		var wg sync.WaitGroup
		var ok atomic.Int32
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if s.store.CreateIfNameAvailable(s.ctx, newCountry("Chile")) == nil {
					ok.Add(1)
				}
			}()
		}
		wg.Wait()
		s.Equal(int32(1), ok.Load())
	})
}

func (s *CountryStoreSuite) TestListOrderedByName() {
	for _, name := range []string{"usa", "Canada", "India", "UK"} {
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, newCountry(name)))
	}

	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name)
	}
	s.Equal([]string{"Canada", "India", "UK", "usa"}, names)

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, n, fmt.Sprintf("names: %v", names))
}
