package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"persons/internal/admin"
	auditlog "persons/internal/audit"
	countryhandler "persons/internal/country/handler"
	countrymetrics "persons/internal/country/metrics"
	countryservice "persons/internal/country/service"
	countrystore "persons/internal/country/store"
	personhandler "persons/internal/person/handler"
	personmetrics "persons/internal/person/metrics"
	personservice "persons/internal/person/service"
	personstore "persons/internal/person/store"
	"persons/internal/platform/config"
	"persons/internal/platform/database"
	"persons/internal/platform/kafka"
	httpmetrics "persons/internal/platform/metrics"
	redisclient "persons/internal/platform/redis"
	"persons/internal/seed"
	audit "persons/pkg/platform/audit"
	"persons/pkg/platform/audit/publisher"
	"persons/pkg/platform/audit/store/logsink"
	auditmemory "persons/pkg/platform/audit/store/memory"
	auditpostgres "persons/pkg/platform/audit/store/postgres"
	"persons/pkg/platform/circuit"
	"persons/pkg/platform/tx"
)

// personStore is what the person service and the stats endpoint need.
type personStore interface {
	personservice.Store
	admin.Counter
}

// auditBackend is a queryable audit store.
type auditBackend interface {
	audit.Store
	audit.Lister
}

// app holds every long-lived dependency of the process.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry

	db       *sql.DB
	redis    *redisclient.Client
	producer *kafka.Producer

	txRunner  tx.Runner
	countries countrystore.Store
	persons   personStore
	auditLog  auditBackend
	publisher *publisher.Publisher

	countryService *countryservice.Service
	personService  *personservice.Service
	httpMetrics    *httpmetrics.Metrics
}

// newApp connects the configured backends. Empty URLs select in-memory
// stores, no cache and a log-only audit sink.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := a.connect(ctx); err != nil {
		a.Close()
		return nil, err
	}
	a.buildStores()
	a.buildServices()
	return a, nil
}

func (a *app) connect(ctx context.Context) error {
	if a.cfg.Database.URL != "" {
		db, err := database.Open(ctx, a.cfg.Database)
		if err != nil {
			return err
		}
		a.db = db
		if err := database.Migrate(ctx, db, a.logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	rc, err := redisclient.New(ctx, a.cfg.Redis)
	if err != nil {
		return err
	}
	a.redis = rc

	producer, err := kafka.NewProducer(ctx, a.cfg.Kafka)
	if err != nil {
		return err
	}
	a.producer = producer
	if producer != nil {
		if err := producer.EnsureTopic(ctx, a.cfg.Kafka.Partitions); err != nil {
			a.logger.WarnContext(ctx, "failed to ensure audit topic",
				"topic", a.cfg.Kafka.AuditTopic,
				"error", err,
			)
		}
	}
	return nil
}

func (a *app) buildStores() {
	if a.db != nil {
		a.txRunner = tx.NewPostgresRunner(a.db)
		a.countries = countrystore.NewPostgres(a.db)
		a.persons = personstore.NewPostgres(a.db)
		a.auditLog = auditpostgres.New(a.db)
	} else {
		a.txRunner = tx.NewInMemoryRunner()
		a.countries = countrystore.NewInMemory()
		a.auditLog = auditmemory.NewInMemoryStore()
	}
	if a.redis != nil {
		a.countries = countrystore.NewCached(a.countries, a.redis.Client, a.cfg.Redis.CacheTTL, a.logger)
	}
	if a.db == nil {
		a.persons = personstore.NewInMemory(personstore.LookupFrom(a.countries))
	}

	sinks := audit.Fanout{a.auditLog, logsink.New(a.logger)}
	if a.producer != nil {
		breaker := circuit.New("kafka", circuit.WithFailureThreshold(3), circuit.WithCooldown(30*time.Second))
		sinks = append(sinks, audit.NewGuarded(a.producer, breaker, a.logger))
	}
	opts := []publisher.Option{
		publisher.WithLogger(a.logger),
		publisher.WithMetrics(publisher.NewMetricsWithRegisterer(a.registry)),
	}
	if a.cfg.Audit.AsyncBuffer > 0 {
		opts = append(opts, publisher.WithAsyncBuffer(a.cfg.Audit.AsyncBuffer))
	}
	a.publisher = publisher.NewPublisher(sinks, opts...)
}

func (a *app) buildServices() {
	a.httpMetrics = httpmetrics.NewWithRegisterer(a.registry)
	a.countryService = countryservice.New(a.countries,
		countryservice.WithLogger(a.logger),
		countryservice.WithAuditPublisher(a.publisher),
		countryservice.WithMetrics(countrymetrics.NewWithRegisterer(a.registry)),
	)
	a.personService = personservice.New(a.persons, a.countries,
		personservice.WithLogger(a.logger),
		personservice.WithAuditPublisher(a.publisher),
		personservice.WithMetrics(personmetrics.NewWithRegisterer(a.registry)),
		personservice.WithTxRunner(a.txRunner),
	)
}

// handlers returns the public and admin-only route groups.
func (a *app) handlers() (public []registrar, adminOnly []registrar) {
	public = []registrar{
		personhandler.New(a.personService, a.countryService, a.logger),
	}
	adminOnly = []registrar{
		auditlog.NewHandler(auditlog.NewService(a.auditLog), a.logger),
		admin.New(a.countries, a.persons, a.logger),
	}
	return public, adminOnly
}

func (a *app) countryHandler() registrar {
	return countryhandler.New(a.countryService, a.logger)
}

// seed loads the configured seed files into the stores.
func (a *app) seed(ctx context.Context) (seed.Result, error) {
	countries, err := seed.LoadCountries(a.cfg.Seed.CountriesPath)
	if err != nil {
		return seed.Result{}, err
	}
	persons, err := seed.LoadPersons(a.cfg.Seed.PersonsPath)
	if err != nil {
		return seed.Result{}, err
	}
	seeder := seed.New(a.countries, a.persons,
		seed.WithLogger(a.logger),
		seed.WithTxRunner(a.txRunner),
	)
	return seeder.Run(ctx, countries, persons)
}

// health pings every configured backend.
func (a *app) health(ctx context.Context) map[string]error {
	checks := map[string]error{}
	if a.db != nil {
		checks["database"] = a.db.PingContext(ctx)
	}
	if a.redis != nil {
		checks["redis"] = a.redis.Health(ctx)
	}
	if a.producer != nil {
		checks["kafka"] = a.producer.Health(ctx)
	}
	return checks
}

// Close drains the audit buffer and releases connections.
func (a *app) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.producer != nil {
		a.producer.Close()
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
