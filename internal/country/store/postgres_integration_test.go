//go:build integration

package store_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"persons/internal/country/models"
	"persons/internal/country/store"
	"persons/internal/platform/database"
	"persons/pkg/platform/sentinel"
	"persons/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(database.Migrate(context.Background(), s.postgres.DB, logger))
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "persons", "countries"))
}

func newTestCountry(name string) *models.Country {
	return &models.Country{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC().Truncate(time.Microsecond)}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	c := newTestCountry("Canada")
	s.Require().NoError(s.store.CreateIfNameAvailable(ctx, c))

	found, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(c.Name, found.Name)

	byName, err := s.store.FindByName(ctx, "CANADA")
	s.Require().NoError(err)
	s.Equal(c.ID, byName.ID)

	_, err = s.store.FindByID(ctx, uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentUniqueNameViolation verifies that concurrent creation attempts
// with the same name result in exactly one success.
func (s *PostgresStoreSuite) TestConcurrentUniqueNameViolation() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "Vietnam"
			if i%2 == 0 {
				name = "VIETNAM"
			}
			err := s.store.CreateIfNameAvailable(ctx, newTestCountry(name))
			switch {
			case err == nil:
				successCount.Add(1)
			case err == sentinel.ErrAlreadyUsed:
				conflictCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load())
	s.Equal(int32(goroutines-1), conflictCount.Load())
}

func (s *PostgresStoreSuite) TestListOrderedByName() {
	ctx := context.Background()
	for _, name := range []string{"USA", "canada", "India"} {
		s.Require().NoError(s.store.CreateIfNameAvailable(ctx, newTestCountry(name)))
	}
	list, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal("canada", list[0].Name)
	s.Equal("India", list[1].Name)
	s.Equal("USA", list[2].Name)

	n, err := s.store.Count(ctx)
	s.Require().NoError(err)
	s.Equal(3, n)
}
