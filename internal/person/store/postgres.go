package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"persons/internal/person/models"
	"persons/internal/platform/database"
	"persons/pkg/platform/sentinel"
	txcontext "persons/pkg/platform/tx"
)

const selectRows = `
	SELECT p.id, p.name, p.email, p.date_of_birth, p.gender, p.country_id,
	       p.address, p.receive_news_letters, p.tin, p.created_at, p.updated_at,
	       COALESCE(c.name, '')
	FROM persons p
	LEFT JOIN countries c ON c.id = p.country_id
`

// filterColumns maps each search field to the SQL expression it matches.
var filterColumns = map[models.SearchField]string{
	models.SearchPersonName:  "p.name",
	models.SearchEmail:       "p.email",
	models.SearchDateOfBirth: "to_char(p.date_of_birth, 'DD FMMonth YYYY')",
	models.SearchGender:      "p.gender",
	models.SearchCountryID:   "c.name",
	models.SearchAddress:     "p.address",
}

// PostgresStore persists persons in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, p *models.Person) error {
	query := `
		INSERT INTO persons (
			id, name, email, date_of_birth, gender, country_id,
			address, receive_news_letters, tin, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query,
		p.ID, p.Name, p.Email, p.DateOfBirth, string(p.Gender), p.CountryID,
		p.Address, p.ReceiveNewsLetters, p.TIN, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "insert person")
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Row, error) {
	row := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, selectRows+` WHERE p.id = $1`, id)
	r, err := scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find person: %w", err)
	}
	return &r, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Row, error) {
	return s.Filter(ctx, models.Filter{})
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, `SELECT count(*) FROM persons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return n, nil
}

// Filter runs a case-insensitive contains match (ILIKE) on the selected column.
func (s *PostgresStore) Filter(ctx context.Context, f models.Filter) ([]models.Row, error) {
	query := selectRows
	var args []any
	if !f.MatchesAll() {
		query += ` WHERE ` + filterColumns[f.Field] + ` ILIKE '%' || $1 || '%'`
		args = append(args, escapeLike(f.Term))
	}
	query += ` ORDER BY p.created_at, p.id`

	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	out := []models.Row{}
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, p *models.Person) error {
	query := `
		UPDATE persons SET
			name = $2, email = $3, date_of_birth = $4, gender = $5, country_id = $6,
			address = $7, receive_news_letters = $8, tin = $9, updated_at = $10
		WHERE id = $1
	`
	res, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query,
		p.ID, p.Name, p.Email, p.DateOfBirth, string(p.Gender), p.CountryID,
		p.Address, p.ReceiveNewsLetters, p.TIN, p.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "update person")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Delete reports whether a row was removed.
func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete person: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete person: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(sc scanner) (models.Row, error) {
	var (
		p         models.Person
		dob       sql.NullTime
		gender    string
		countryID uuid.NullUUID
		country   string
	)
	err := sc.Scan(
		&p.ID, &p.Name, &p.Email, &dob, &gender, &countryID,
		&p.Address, &p.ReceiveNewsLetters, &p.TIN, &p.CreatedAt, &p.UpdatedAt,
		&country,
	)
	if err != nil {
		return models.Row{}, err
	}
	p.Gender = models.Gender(gender)
	if dob.Valid {
		t := models.DateOnly(dob.Time)
		p.DateOfBirth = &t
	}
	if countryID.Valid {
		id := countryID.UUID
		p.CountryID = &id
	}
	return models.Row{Person: &p, CountryName: country}, nil
}

func translateWriteError(err error, op string) error {
	switch {
	case database.IsUniqueViolation(err):
		return sentinel.ErrAlreadyUsed
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: unknown country: %w", op, sentinel.ErrInvalidState)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// escapeLike quotes LIKE wildcards so the term matches literally.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
