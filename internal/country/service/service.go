package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"persons/internal/country/metrics"
	"persons/internal/country/models"
	dErrors "persons/pkg/domain-errors"
	audit "persons/pkg/platform/audit"
	"persons/pkg/platform/sentinel"
	"persons/pkg/requestcontext"
)

type Store interface {
	CreateIfNameAvailable(ctx context.Context, c *models.Country) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Country, error)
	FindByName(ctx context.Context, name string) (*models.Country, error)
	List(ctx context.Context) ([]*models.Country, error)
	Count(ctx context.Context) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service manages the country catalogue.
type Service struct {
	store          Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tracer: otel.Tracer("persons/country"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddCountry validates req and stores a new country with a fresh ID.
func (s *Service) AddCountry(ctx context.Context, req *models.AddCountryRequest) (*models.Country, error) {
	ctx, span := s.tracer.Start(ctx, "country.AddCountry")
	defer span.End()

	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "country request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	country, err := models.NewCountry(uuid.New(), req.Name, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.store.CreateIfNameAvailable(ctx, country); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, &dErrors.Error{
				Code:    dErrors.CodeConflict,
				Message: "country name must be unique",
				Fields:  []dErrors.FieldError{{Field: "country_name", Message: "country name already exists"}},
			}
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create country")
	}
	span.SetAttributes(attribute.String("country.id", country.ID.String()))

	s.emitAudit(ctx, country)
	if s.metrics != nil {
		s.metrics.IncrementCountryCreated()
	}
	return country, nil
}

// ListCountries returns every country ordered by name.
func (s *Service) ListCountries(ctx context.Context) ([]*models.Country, error) {
	ctx, span := s.tracer.Start(ctx, "country.ListCountries")
	defer span.End()

	if s.metrics != nil {
		defer s.metrics.ObserveList(time.Now())
	}
	countries, err := s.store.List(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list countries")
	}
	return countries, nil
}

// GetCountry returns the country with the given id.
func (s *Service) GetCountry(ctx context.Context, id uuid.UUID) (*models.Country, error) {
	ctx, span := s.tracer.Start(ctx, "country.GetCountry",
		trace.WithAttributes(attribute.String("country.id", id.String())))
	defer span.End()

	if id == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "country id is required")
	}
	country, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "country not found")
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load country")
	}
	return country, nil
}

func (s *Service) emitAudit(ctx context.Context, country *models.Country) {
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Action:     string(audit.EventCountryCreated),
		EntityType: audit.EntityCountry,
		EntityID:   country.ID.String(),
		Subject:    country.Name,
		RequestID:  requestcontext.RequestID(ctx),
		ClientIP:   requestcontext.ClientIP(ctx),
	})
	if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", audit.EventCountryCreated,
			"country_id", country.ID,
			"error", err,
		)
	}
}
