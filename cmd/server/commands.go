package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"persons/internal/platform/database"
	"persons/internal/platform/httpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations (requires DATABASE_URL)",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load seed countries and persons",
	RunE:  runSeed,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log := setup()
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("failed to release resources", "error", err)
		}
	}()

	if cfg.Seed.OnStartup {
		if _, err := a.seed(ctx); err != nil {
			return err
		}
	}

	srv := httpserver.New(cfg.Server.Addr, newRouter(a))
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting persons server",
			"addr", cfg.Server.Addr,
			"environment", cfg.Server.Environment,
			"database", cfg.Database.URL != "",
			"cache", cfg.Redis.URL != "",
			"kafka", len(cfg.Kafka.Brokers) > 0,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log := setup()
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	db, err := database.Open(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return database.Migrate(cmd.Context(), db, log)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log := setup()
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is required; in-memory stores are seeded with SEED_ON_STARTUP")
	}
	a, err := newApp(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.seed(cmd.Context())
	if err != nil {
		return err
	}
	log.Info("seeded",
		"countries_created", res.CountriesCreated,
		"persons_created", res.PersonsCreated,
	)
	return nil
}
