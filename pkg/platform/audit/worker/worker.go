package worker

import (
	"context"
	"log/slog"

	audit "persons/pkg/platform/audit"
)

// Worker consumes audit events from a channel and persists them. Append
// failures are logged and the worker moves on; audit is best effort once an
// event has left the request path.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
	onFail func()
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger, onFail func()) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger, onFail: onFail}
}

// Run blocks until ctx is done or the inbox is closed. A closed inbox is
// drained fully before Run returns nil.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.append(event)
		}
	}
}

func (w *Worker) append(event audit.Event) {
	// Detached from the request context, which is usually cancelled by now.
	if err := w.store.Append(context.Background(), event); err != nil {
		if w.onFail != nil {
			w.onFail()
		}
		if w.logger != nil {
			w.logger.Error("audit append failed",
				"action", event.Action,
				"entity_id", event.EntityID,
				"error", err,
			)
		}
	}
}
