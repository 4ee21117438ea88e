//go:build integration

package database

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"persons/pkg/testutil/containers"
)

func TestMigrateIsIdempotent(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, Migrate(ctx, pg.DB, logger))
	require.NoError(t, Migrate(ctx, pg.DB, logger))

	var n int
	require.NoError(t, pg.DB.QueryRowContext(ctx, `SELECT count(*) FROM schema_migrations`).Scan(&n))
	require.Equal(t, 3, n)

	_, err := pg.DB.ExecContext(ctx, `INSERT INTO countries (id, name) VALUES (gen_random_uuid(), 'Chile')`)
	require.NoError(t, err)
	_, err = pg.DB.ExecContext(ctx, `INSERT INTO countries (id, name) VALUES (gen_random_uuid(), 'CHILE')`)
	require.True(t, IsUniqueViolation(err))
}

func TestMigrateConcurrentReplicas(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	g, gctx := errgroup.WithContext(ctx)
	for range 4 {
		g.Go(func() error {
			return Migrate(gctx, pg.DB, logger)
		})
	}
	require.NoError(t, g.Wait())

	var n int
	require.NoError(t, pg.DB.QueryRowContext(ctx, `SELECT count(*) FROM schema_migrations`).Scan(&n))
	require.Equal(t, 3, n)
}
