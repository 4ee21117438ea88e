package audit

import (
	"context"
	"fmt"
	"log/slog"

	"persons/pkg/platform/circuit"
	"persons/pkg/platform/sentinel"
)

// ErrSinkUnavailable is returned while a guarded sink's breaker is open.
var ErrSinkUnavailable = fmt.Errorf("audit sink: %w", sentinel.ErrUnavailable)

// Guarded skips a failing sink while its breaker is open, so a down broker
// does not add its timeout to every write.
type Guarded struct {
	store   Store
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuarded(store Store, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	return &Guarded{store: store, breaker: breaker, logger: logger}
}

func (g *Guarded) Append(ctx context.Context, event Event) error {
	if !g.breaker.Allow() {
		return ErrSinkUnavailable
	}
	if err := g.store.Append(ctx, event); err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened && g.logger != nil {
			g.logger.WarnContext(ctx, "audit sink circuit opened",
				"sink", g.breaker.Name(),
				"error", err,
			)
		}
		return err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed && g.logger != nil {
		g.logger.InfoContext(ctx, "audit sink circuit closed", "sink", g.breaker.Name())
	}
	return nil
}
