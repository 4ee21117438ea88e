package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"persons/internal/country/models"
	"persons/internal/platform/database"
	"persons/pkg/platform/sentinel"
	txcontext "persons/pkg/platform/tx"
)

// PostgresStore persists countries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateIfNameAvailable relies on the unique index on lower(name).
func (s *PostgresStore) CreateIfNameAvailable(ctx context.Context, c *models.Country) error {
	query := `INSERT INTO countries (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query, c.ID, c.Name, c.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert country: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Country, error) {
	query := `SELECT id, name, created_at FROM countries WHERE id = $1`
	return s.findOne(ctx, query, id)
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Country, error) {
	query := `SELECT id, name, created_at FROM countries WHERE lower(name) = lower($1)`
	return s.findOne(ctx, query, strings.TrimSpace(name))
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*models.Country, error) {
	var c models.Country
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find country: %w", err)
	}
	return &c, nil
}

// List returns all countries ordered by name.
func (s *PostgresStore) List(ctx context.Context) ([]*models.Country, error) {
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx,
		`SELECT id, name, created_at FROM countries ORDER BY lower(name), name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var out []*models.Country
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, `SELECT count(*) FROM countries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count countries: %w", err)
	}
	return n, nil
}
