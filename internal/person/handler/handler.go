package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	countrymodels "persons/internal/country/models"
	"persons/internal/person/models"
	dErrors "persons/pkg/domain-errors"
	"persons/pkg/fieldsort"
	"persons/pkg/platform/httputil"
	"persons/pkg/requestcontext"
)

// DefaultSortBy is the index ordering when the caller names none.
const DefaultSortBy = "PersonName"

// Service defines the person operations the handler needs.
type Service interface {
	AddPerson(ctx context.Context, req *models.AddPersonRequest) (*models.Response, error)
	GetPerson(ctx context.Context, id uuid.UUID) (*models.Response, error)
	FilterPersons(ctx context.Context, searchBy, term string) ([]models.Response, error)
	SortPersons(ctx context.Context, persons []models.Response, sortBy string, order fieldsort.Order) ([]models.Response, error)
	UpdatePerson(ctx context.Context, req *models.UpdatePersonRequest) (*models.Response, error)
	DeletePerson(ctx context.Context, id uuid.UUID) (bool, error)
}

// CountryLister supplies the country drop-down for person forms.
type CountryLister interface {
	ListCountries(ctx context.Context) ([]*countrymodels.Country, error)
}

// Handler wires person endpoints to the person service.
type Handler struct {
	service   Service
	countries CountryLister
	logger    *slog.Logger
}

func New(service Service, countries CountryLister, logger *slog.Logger) *Handler {
	return &Handler{service: service, countries: countries, logger: logger}
}

// Register mounts person endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleIndex)
	r.Route("/persons", func(r chi.Router) {
		r.Get("/", h.HandleIndex)
		r.Post("/", h.HandleCreate)
		r.Get("/new", h.HandleNew)
		r.Get("/{id}", h.HandleGet)
		r.Get("/{id}/edit", h.HandleEdit)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

// IndexResponse is the person listing with the search and sort state echoed back.
type IndexResponse struct {
	Persons       []models.Response     `json:"persons"`
	SearchBy      string                `json:"search_by,omitempty"`
	SearchString  string                `json:"search_string,omitempty"`
	SortBy        string                `json:"sort_by"`
	SortOrder     fieldsort.Order       `json:"sort_order"`
	SearchOptions []models.SearchOption `json:"search_options"`
	SortOptions   []string              `json:"sort_options"`
}

// FormResponse carries the options a create or edit form renders.
type FormResponse struct {
	Person    *models.UpdatePersonRequest `json:"person,omitempty"`
	Countries []countrymodels.Response    `json:"countries"`
	Genders   []models.Gender             `json:"genders"`
}

// FormErrorResponse is a validation failure with the form options attached.
type FormErrorResponse struct {
	httputil.ErrorResponse
	Countries []countrymodels.Response `json:"countries"`
	Genders   []models.Gender          `json:"genders"`
}

// HandleIndex handles GET / and GET /persons.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	searchBy := q.Get("searchBy")
	searchString := q.Get("searchString")
	sortBy := q.Get("sortBy")
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	order := fieldsort.ParseOrder(q.Get("sortOrder"))

	persons, err := h.service.FilterPersons(ctx, searchBy, searchString)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to filter persons",
			"request_id", requestcontext.RequestID(ctx),
			"search_by", searchBy,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	persons, err = h.service.SortPersons(ctx, persons, sortBy, order)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, IndexResponse{
		Persons:       persons,
		SearchBy:      searchBy,
		SearchString:  searchString,
		SortBy:        sortBy,
		SortOrder:     order,
		SearchOptions: models.SearchOptions,
		SortOptions:   models.SortFields.Names(),
	})
}

// HandleNew handles GET /persons/new.
func (h *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	countries, err := h.countryOptions(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FormResponse{Countries: countries, Genders: models.GenderOptions})
}

// HandleCreate handles POST /persons.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, err := httputil.Decode[models.AddPersonRequest](r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid request body",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	person, err := h.service.AddPerson(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to add person",
			"request_id", requestID,
			"error", err,
		)
		h.writeFormError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "person created",
		"request_id", requestID,
		"person_id", person.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, person)
}

// HandleGet handles GET /persons/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	person, err := h.service.GetPerson(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if person == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "person not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, person)
}

// HandleEdit handles GET /persons/{id}/edit. The person and the country
// options are fetched concurrently.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var (
		person    *models.Response
		countries []countrymodels.Response
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		person, err = h.service.GetPerson(ctx, id)
		if err == nil && person == nil {
			err = dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return err
	})
	g.Go(func() error {
		var err error
		countries, err = h.countryOptions(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	form := person.ToUpdateRequest()
	httputil.WriteJSON(w, http.StatusOK, FormResponse{
		Person:    &form,
		Countries: countries,
		Genders:   models.GenderOptions,
	})
}

// HandleUpdate handles PUT /persons/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	req, err := httputil.Decode[models.UpdatePersonRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	switch req.ID {
	case uuid.Nil:
		req.ID = id
	case id:
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "person id does not match the path"))
		return
	}

	person, err := h.service.UpdatePerson(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to update person",
			"request_id", requestID,
			"person_id", id,
			"error", err,
		)
		h.writeFormError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "person updated",
		"request_id", requestID,
		"person_id", person.ID,
	)
	httputil.WriteJSON(w, http.StatusOK, person)
}

// HandleDelete handles DELETE /persons/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	removed, err := h.service.DeletePerson(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !removed {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "person not found"))
		return
	}

	h.logger.InfoContext(ctx, "person deleted",
		"request_id", requestcontext.RequestID(ctx),
		"person_id", id,
	)
	w.WriteHeader(http.StatusNoContent)
}

// writeFormError renders validation failures with the form options so the
// client can redisplay the form. Other errors use the plain envelope.
func (h *Handler) writeFormError(w http.ResponseWriter, r *http.Request, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) || de.Code != dErrors.CodeValidation {
		httputil.WriteError(w, err)
		return
	}

	countries, listErr := h.countryOptions(r.Context())
	if listErr != nil {
		h.logger.WarnContext(r.Context(), "failed to load country options",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", listErr,
		)
	}
	httputil.WriteJSON(w, httputil.StatusFor(de.Code), FormErrorResponse{
		ErrorResponse: httputil.ErrorResponse{
			Error:       string(de.Code),
			Description: de.Message,
			Fields:      de.FieldMap(),
		},
		Countries: countries,
		Genders:   models.GenderOptions,
	})
}

func (h *Handler) countryOptions(ctx context.Context) ([]countrymodels.Response, error) {
	countries, err := h.countries.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	return countrymodels.ToResponses(countries), nil
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return uuid.Nil, false
	}
	return id, true
}
