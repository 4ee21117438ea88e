package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"persons/internal/platform/middleware"
	"persons/pkg/platform/httputil"
	adminmw "persons/pkg/platform/middleware/admin"
	"persons/pkg/platform/middleware/metadata"
	"persons/pkg/platform/middleware/requesttime"
)

type registrar interface {
	Register(r chi.Router)
}

const healthTimeout = 2 * time.Second

// newRouter builds the full HTTP surface with the shared middleware chain.
func newRouter(a *app) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.Logger(a.logger))
	r.Use(middleware.LatencyMiddleware(a.httpMetrics))
	r.Use(middleware.Timeout(a.cfg.Server.RequestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/health", healthHandler(a.health))
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	requireAdmin := adminmw.RequireAdminToken(a.cfg.Server.AdminToken, a.logger)
	public, adminOnly := a.handlers()
	for _, h := range public {
		h.Register(r)
	}
	r.Group(func(r chi.Router) {
		r.Use(writesOnly(requireAdmin))
		a.countryHandler().Register(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		for _, h := range adminOnly {
			h.Register(r)
		}
	})
	return r
}

// writesOnly applies mw to every method except GET and HEAD.
func writesOnly(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		guarded := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			guarded.ServeHTTP(w, r)
		})
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(check func(ctx context.Context) map[string]error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: map[string]string{}}
		status := http.StatusOK
		for name, err := range check(ctx) {
			if err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
