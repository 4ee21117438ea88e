// Package admin serves operator endpoints guarded by the admin token.
package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	dErrors "persons/pkg/domain-errors"
	"persons/pkg/platform/httputil"
	"persons/pkg/requestcontext"
)

// Counter is implemented by the country and person stores.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type Handler struct {
	countries Counter
	persons   Counter
	logger    *slog.Logger
}

func New(countries, persons Counter, logger *slog.Logger) *Handler {
	return &Handler{countries: countries, persons: persons, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/stats", h.HandleStats)
}

// HandleStats handles GET /admin/stats. Both counts run concurrently.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	var resp StatsResponse
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		n, err := h.countries.Count(ctx)
		resp.Countries = n
		return err
	})
	g.Go(func() error {
		n, err := h.persons.Count(ctx)
		resp.Persons = n
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to collect stats",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to collect stats"))
		return
	}
	resp.GeneratedAt = requestcontext.Now(r.Context())
	httputil.WriteJSON(w, http.StatusOK, resp)
}
