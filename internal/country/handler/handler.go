package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"persons/internal/country/models"
	dErrors "persons/pkg/domain-errors"
	"persons/pkg/platform/httputil"
	"persons/pkg/requestcontext"
)

// Service defines the country operations the handler needs.
type Service interface {
	AddCountry(ctx context.Context, req *models.AddCountryRequest) (*models.Country, error)
	ListCountries(ctx context.Context) ([]*models.Country, error)
	GetCountry(ctx context.Context, id uuid.UUID) (*models.Country, error)
}

// Handler wires country endpoints to the country service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts country endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/countries", h.HandleList)
	r.Post("/countries", h.HandleCreate)
	r.Get("/countries/{id}", h.HandleGet)
}

// ListResponse wraps the country list.
type ListResponse struct {
	Countries []models.Response `json:"countries"`
}

// HandleList handles GET /countries.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	countries, err := h.service.ListCountries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list countries",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Countries: models.ToResponses(countries)})
}

// HandleCreate handles POST /countries.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.AddCountryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	country, err := h.service.AddCountry(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to add country",
			"request_id", requestID,
			"country_name", req.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "country created",
		"request_id", requestID,
		"country_id", country.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, country.ToResponse())
}

// HandleGet handles GET /countries/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid country id"))
		return
	}

	country, err := h.service.GetCountry(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, country.ToResponse())
}
