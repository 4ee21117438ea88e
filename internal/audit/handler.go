package audit

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	events "persons/pkg/platform/audit"
	"persons/pkg/platform/httputil"
	"persons/pkg/requestcontext"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the audit endpoint. Callers guard it with the admin token.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/audit/{entity_id}", h.HandleList)
}

type ListResponse struct {
	Events []events.Event `json:"events"`
}

// HandleList handles GET /admin/audit/{entity_id}.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entityID := chi.URLParam(r, "entity_id")

	list, err := h.service.List(ctx, entityID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to list audit events",
			"request_id", requestcontext.RequestID(ctx),
			"entity_id", entityID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Events: list})
}
