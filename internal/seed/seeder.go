package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	countrymodels "persons/internal/country/models"
	"persons/internal/person/models"
	"persons/pkg/platform/sentinel"
	"persons/pkg/platform/tx"
)

type CountryStore interface {
	CreateIfNameAvailable(ctx context.Context, c *countrymodels.Country) error
}

type PersonStore interface {
	Create(ctx context.Context, p *models.Person) error
}

// Result counts what a run inserted and what was already present.
type Result struct {
	CountriesCreated int
	CountriesSkipped int
	PersonsCreated   int
	PersonsSkipped   int
}

// Seeder writes seed entries straight to the stores, bypassing audit.
// Entries whose id or unique name already exists are skipped, so runs are
// repeatable.
type Seeder struct {
	countries CountryStore
	persons   PersonStore
	tx        tx.Runner
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Seeder)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Seeder) {
		s.logger = logger
	}
}

func WithTxRunner(r tx.Runner) Option {
	return func(s *Seeder) {
		if r != nil {
			s.tx = r
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Seeder) {
		s.now = now
	}
}

func New(countries CountryStore, persons PersonStore, opts ...Option) *Seeder {
	s := &Seeder{
		countries: countries,
		persons:   persons,
		tx:        tx.NewInMemoryRunner(),
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run inserts countries first, then persons. Each entry commits on its own
// so an existing row only rolls back that entry.
func (s *Seeder) Run(ctx context.Context, countries []Country, persons []Person) (Result, error) {
	var res Result
	now := s.now().UTC()

	for _, entry := range countries {
		created, err := s.seedCountry(ctx, entry, now)
		if err != nil {
			return res, err
		}
		if created {
			res.CountriesCreated++
		} else {
			res.CountriesSkipped++
		}
	}
	for _, entry := range persons {
		created, err := s.seedPerson(ctx, entry, now)
		if err != nil {
			return res, err
		}
		if created {
			res.PersonsCreated++
		} else {
			res.PersonsSkipped++
		}
	}

	s.logger.InfoContext(ctx, "seed complete",
		"countries_created", res.CountriesCreated,
		"countries_skipped", res.CountriesSkipped,
		"persons_created", res.PersonsCreated,
		"persons_skipped", res.PersonsSkipped,
	)
	return res, nil
}

func (s *Seeder) seedCountry(ctx context.Context, entry Country, now time.Time) (bool, error) {
	id, err := parseID(entry.ID)
	if err != nil {
		return false, fmt.Errorf("country %q: %w", entry.Name, err)
	}
	country, err := countrymodels.NewCountry(id, entry.Name, now)
	if err != nil {
		return false, fmt.Errorf("country %q: %w", entry.Name, err)
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.countries.CreateIfNameAvailable(ctx, country)
	})
	return created(err, "country", entry.Name)
}

func (s *Seeder) seedPerson(ctx context.Context, entry Person, now time.Time) (bool, error) {
	person, err := entry.toPerson(now)
	if err != nil {
		return false, fmt.Errorf("person %q: %w", entry.Name, err)
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.persons.Create(ctx, person)
	})
	return created(err, "person", entry.Name)
}

func created(err error, kind, name string) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return false, nil
	default:
		return false, fmt.Errorf("%s %q: %w", kind, name, err)
	}
}

// toPerson validates the entry with the same rules as AddPerson.
func (p Person) toPerson(now time.Time) (*models.Person, error) {
	id, err := parseID(p.ID)
	if err != nil {
		return nil, err
	}
	countryID, err := parseOptionalID(p.CountryID)
	if err != nil {
		return nil, err
	}
	dob, err := parseDate(p.DateOfBirth)
	if err != nil {
		return nil, err
	}

	req := &models.AddPersonRequest{
		Name:               p.Name,
		Email:              p.Email,
		DateOfBirth:        dob,
		Gender:             p.Gender,
		CountryID:          countryID,
		Address:            p.Address,
		ReceiveNewsLetters: p.ReceiveNewsLetters,
		TIN:                p.TIN,
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, errors.New("person_id is required")
	}
	return req.ToPerson(id, now), nil
}
