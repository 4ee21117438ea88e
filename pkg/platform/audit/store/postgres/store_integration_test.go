//go:build integration

package postgres

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"persons/internal/platform/database"
	audit "persons/pkg/platform/audit"
	"persons/pkg/platform/tx"
	"persons/pkg/testutil/containers"
)

type StoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *Store
	runner   *tx.PostgresRunner
}

func TestStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(database.Migrate(context.Background(), s.postgres.DB, logger))
	s.store = New(s.postgres.DB)
	s.runner = tx.NewPostgresRunner(s.postgres.DB)
}

func (s *StoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "audit_events", "countries"))
}

func (s *StoreSuite) event(entityID string) audit.Event {
	return audit.Event{
		Timestamp:  time.Now().UTC(),
		Action:     string(audit.EventCountryCreated),
		EntityType: audit.EntityCountry,
		EntityID:   entityID,
		Subject:    "Chile",
	}
}

func (s *StoreSuite) countCountries(ctx context.Context) int {
	var n int
	s.Require().NoError(s.postgres.DB.QueryRowContext(ctx, `SELECT count(*) FROM countries`).Scan(&n))
	return n
}

func (s *StoreSuite) TestRejectedEventKeepsTransaction() {
	ctx := context.Background()
	id := uuid.New()
	var appendErr error

	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := tx.Pick(ctx, s.postgres.DB).ExecContext(ctx,
			`INSERT INTO countries (id, name) VALUES ($1, 'Chile')`, id); err != nil {
			return err
		}
		event := s.event(id.String())
		event.ClientIP = strings.Repeat("9", 100)
		appendErr = s.store.Append(ctx, event)
		return nil
	})

	s.Require().NoError(err)
	s.Error(appendErr)
	s.Equal(1, s.countCountries(ctx))
	events, err := s.store.ListByEntity(ctx, id.String())
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *StoreSuite) TestAppendCommitsWithTransaction() {
	ctx := context.Background()
	id := uuid.New()

	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		return s.store.Append(ctx, s.event(id.String()))
	})
	s.Require().NoError(err)

	events, err := s.store.ListByEntity(ctx, id.String())
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("Chile", events[0].Subject)
}

func (s *StoreSuite) TestAppendWithoutTransaction() {
	ctx := context.Background()
	id := uuid.NewString()

	s.Require().NoError(s.store.Append(ctx, s.event(id)))

	events, err := s.store.ListByEntity(ctx, id)
	s.Require().NoError(err)
	s.Len(events, 1)
}
