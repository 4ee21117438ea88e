package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	audit "persons/pkg/platform/audit"
	txcontext "persons/pkg/platform/tx"
)

// Store implements audit.Store on the audit_events table. Inside a caller's
// transaction the insert runs under a savepoint, so a rejected audit row is
// rolled back on its own and the transaction stays usable.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts an audit event.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	tx, ok := txcontext.From(ctx)
	if !ok {
		return insert(ctx, s.db, event)
	}

	if _, err := tx.ExecContext(ctx, `SAVEPOINT audit_event`); err != nil {
		return fmt.Errorf("audit savepoint: %w", err)
	}
	if err := insert(ctx, tx, event); err != nil {
		if _, rbErr := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT audit_event`); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback audit savepoint: %w", rbErr))
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, `RELEASE SAVEPOINT audit_event`); err != nil {
		return fmt.Errorf("release audit savepoint: %w", err)
	}
	return nil
}

func insert(ctx context.Context, q txcontext.Querier, event audit.Event) error {
	query := `
		INSERT INTO audit_events (
			id, occurred_at, action, entity_type, entity_id,
			subject, request_id, client_ip
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.ExecContext(ctx, query,
		uuid.New(),
		event.Timestamp,
		event.Action,
		event.EntityType,
		event.EntityID,
		event.Subject,
		event.RequestID,
		event.ClientIP,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByEntity returns events for one entity, oldest first.
func (s *Store) ListByEntity(ctx context.Context, entityID string) ([]audit.Event, error) {
	query := `
		SELECT occurred_at, action, entity_type, entity_id, subject, request_id, client_ip
		FROM audit_events
		WHERE entity_id = $1
		ORDER BY occurred_at ASC
	`
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var event audit.Event
		if err := rows.Scan(
			&event.Timestamp,
			&event.Action,
			&event.EntityType,
			&event.EntityID,
			&event.Subject,
			&event.RequestID,
			&event.ClientIP,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
