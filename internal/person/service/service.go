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

	countrymodels "persons/internal/country/models"
	"persons/internal/person/metrics"
	"persons/internal/person/models"
	dErrors "persons/pkg/domain-errors"
	"persons/pkg/fieldsort"
	audit "persons/pkg/platform/audit"
	"persons/pkg/platform/sentinel"
	"persons/pkg/platform/tx"
	"persons/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, p *models.Person) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Row, error)
	List(ctx context.Context) ([]models.Row, error)
	Filter(ctx context.Context, f models.Filter) ([]models.Row, error)
	Update(ctx context.Context, p *models.Person) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CountryStore resolves country references. FindByID returns
// sentinel.ErrNotFound for unknown ids.
type CountryStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*countrymodels.Country, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates person CRUD, filtering and sorting.
type Service struct {
	store          Store
	countries      CountryStore
	tx             tx.Runner
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

// WithTxRunner sets the transactional boundary for writes.
func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		if r != nil {
			s.tx = r
		}
	}
}

// New constructs a Service. Without WithTxRunner, writes are serialised by an
// in-memory runner.
func New(store Store, countries CountryStore, opts ...Option) *Service {
	s := &Service{
		store:     store,
		countries: countries,
		tx:        tx.NewInMemoryRunner(),
		tracer:    otel.Tracer("persons/person"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddPerson validates req, checks the country reference and stores a new person.
func (s *Service) AddPerson(ctx context.Context, req *models.AddPersonRequest) (*models.Response, error) {
	ctx, span := s.tracer.Start(ctx, "person.AddPerson")
	defer span.End()

	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "person request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	person := req.ToPerson(uuid.New(), now)
	var countryName string
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		name, err := s.resolveCountry(ctx, person.CountryID)
		if err != nil {
			return err
		}
		countryName = name
		if err := s.store.Create(ctx, person); err != nil {
			return s.translateWrite(err, "failed to create person")
		}
		return nil
	})
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	s.emitAudit(ctx, audit.EventPersonCreated, person)
	span.SetAttributes(attribute.String("person.id", person.ID.String()))
	if s.metrics != nil {
		s.metrics.IncMutation(metrics.OpCreate)
	}

	resp := person.ToResponse(countryName, now)
	return &resp, nil
}

// ListPersons returns every person with the joined country name.
func (s *Service) ListPersons(ctx context.Context) ([]models.Response, error) {
	ctx, span := s.tracer.Start(ctx, "person.ListPersons")
	defer span.End()

	rows, err := s.store.List(ctx)
	if err != nil {
		recordError(span, err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list persons")
	}
	return toResponses(rows, requestcontext.Now(ctx)), nil
}

// GetPerson returns the person with id. A nil id yields (nil, nil).
func (s *Service) GetPerson(ctx context.Context, id uuid.UUID) (*models.Response, error) {
	ctx, span := s.tracer.Start(ctx, "person.GetPerson",
		trace.WithAttributes(attribute.String("person.id", id.String())))
	defer span.End()

	if id == uuid.Nil {
		return nil, nil
	}
	row, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		recordError(span, err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}
	resp := row.Person.ToResponse(row.CountryName, requestcontext.Now(ctx))
	return &resp, nil
}

// FilterPersons returns persons whose searchBy field contains term, ignoring
// case. An empty term or unknown field returns everyone.
func (s *Service) FilterPersons(ctx context.Context, searchBy, term string) ([]models.Response, error) {
	label := searchLabel(searchBy, term)
	ctx, span := s.tracer.Start(ctx, "person.FilterPersons",
		trace.WithAttributes(attribute.String("search.field", label)))
	defer span.End()

	if s.metrics != nil {
		defer s.metrics.ObserveIndex(time.Now())
		s.metrics.IncSearch(label)
	}

	rows, err := s.store.Filter(ctx, models.Filter{Field: models.SearchField(searchBy), Term: term})
	if err != nil {
		recordError(span, err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to filter persons")
	}
	return toResponses(rows, requestcontext.Now(ctx)), nil
}

// SortPersons orders persons by sortBy. An empty sortBy returns persons
// unchanged; an unknown one is a bad request.
func (s *Service) SortPersons(ctx context.Context, persons []models.Response, sortBy string, order fieldsort.Order) ([]models.Response, error) {
	_, span := s.tracer.Start(ctx, "person.SortPersons",
		trace.WithAttributes(attribute.String("sort.field", sortBy), attribute.String("sort.order", string(order))))
	defer span.End()

	sorted, err := models.SortFields.Sort(persons, sortBy, order)
	if err != nil {
		if errors.Is(err, fieldsort.ErrUnknownField) {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "unknown sort field "+sortBy)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sort persons")
	}
	return sorted, nil
}

// UpdatePerson replaces the editable fields of an existing person.
func (s *Service) UpdatePerson(ctx context.Context, req *models.UpdatePersonRequest) (*models.Response, error) {
	ctx, span := s.tracer.Start(ctx, "person.UpdatePerson")
	defer span.End()

	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "person request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("person.id", req.ID.String()))

	now := requestcontext.Now(ctx)
	var (
		person      *models.Person
		countryName string
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		row, err := s.store.FindByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "given person id doesn't exist")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
		}
		person = row.Person
		req.ApplyTo(person, now)

		countryName, err = s.resolveCountry(ctx, person.CountryID)
		if err != nil {
			return err
		}
		if err := s.store.Update(ctx, person); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "given person id doesn't exist")
			}
			return s.translateWrite(err, "failed to update person")
		}
		return nil
	})
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	s.emitAudit(ctx, audit.EventPersonUpdated, person)
	if s.metrics != nil {
		s.metrics.IncMutation(metrics.OpUpdate)
	}

	resp := person.ToResponse(countryName, now)
	return &resp, nil
}

// DeletePerson removes the person with id and reports whether one existed.
func (s *Service) DeletePerson(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "person.DeletePerson",
		trace.WithAttributes(attribute.String("person.id", id.String())))
	defer span.End()

	if id == uuid.Nil {
		return false, dErrors.New(dErrors.CodeBadRequest, "person id is required")
	}

	var removed bool
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.store.Delete(ctx, id)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete person")
		}
		return nil
	})
	if err != nil {
		recordError(span, err)
		return false, err
	}
	if removed {
		s.emitAudit(ctx, audit.EventPersonDeleted, &models.Person{ID: id})
		if s.metrics != nil {
			s.metrics.IncMutation(metrics.OpDelete)
		}
	}
	return removed, nil
}

// resolveCountry returns the country name for id, or a field validation
// error when the country does not exist.
func (s *Service) resolveCountry(ctx context.Context, id *uuid.UUID) (string, error) {
	if id == nil {
		return "", nil
	}
	country, err := s.countries.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", unknownCountry()
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load country")
	}
	return country.Name, nil
}

func (s *Service) translateWrite(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrInvalidState):
		return unknownCountry()
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.Wrap(err, dErrors.CodeConflict, "person already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func unknownCountry() error {
	return dErrors.NewValidation("invalid person", dErrors.FieldError{
		Field:   "country_id",
		Message: "country doesn't exist",
	})
}

// emitAudit runs after the transaction has committed so sinks never see a
// change that was rolled back, and a failing sink cannot abort the write.
func (s *Service) emitAudit(ctx context.Context, action audit.AuditEvent, p *models.Person) {
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Action:     string(action),
		EntityType: audit.EntityPerson,
		EntityID:   p.ID.String(),
		Subject:    p.Name,
		RequestID:  requestcontext.RequestID(ctx),
		ClientIP:   requestcontext.ClientIP(ctx),
	})
	if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", action,
			"person_id", p.ID,
			"error", err,
		)
	}
}

// searchLabel maps a requested search field onto the bounded metric label set.
func searchLabel(searchBy, term string) string {
	if term == "" {
		return metrics.SearchNone
	}
	field, ok := models.ParseSearchField(searchBy)
	if !ok {
		return metrics.SearchOther
	}
	return string(field)
}

func toResponses(rows []models.Row, now time.Time) []models.Response {
	out := make([]models.Response, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Person.ToResponse(r.CountryName, now))
	}
	return out
}

func recordError(span trace.Span, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		span.SetStatus(codes.Error, err.Error())
	}
}
