// Package logsink writes audit events to the structured log. It is the sink
// used when neither Kafka nor PostgreSQL is configured.
package logsink

import (
	"context"
	"log/slog"

	audit "persons/pkg/platform/audit"
)

type Store struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	s.logger.InfoContext(ctx, "audit",
		"action", event.Action,
		"entity_type", event.EntityType,
		"entity_id", event.EntityID,
		"subject", event.Subject,
		"request_id", event.RequestID,
		"client_ip", event.ClientIP,
		"timestamp", event.Timestamp,
	)
	return nil
}
