package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "persons/pkg/domain-errors"
)

// MaxNameLength matches the countries.name column.
const MaxNameLength = 40

// Country is a named place a person can belong to.
//
// Invariants:
//   - ID is never uuid.Nil
//   - Name is non-empty, trimmed and at most MaxNameLength characters
//   - Name is unique case-insensitively (enforced by the store)
type Country struct {
	ID        uuid.UUID `json:"country_id"`
	Name      string    `json:"country_name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCountry validates invariants and builds a Country.
func NewCountry(id uuid.UUID, name string, now time.Time) (*Country, error) {
	name = strings.TrimSpace(name)
	if id == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "country id is required")
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "country name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "country name is too long")
	}
	return &Country{ID: id, Name: name, CreatedAt: now}, nil
}

// AddCountryRequest is the input to AddCountry.
type AddCountryRequest struct {
	Name string `json:"country_name"`
}

func (r *AddCountryRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
}

func (r *AddCountryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	var c dErrors.Collector
	c.Check(r.Name != "", "country_name", "country name can't be blank")
	c.Check(utf8.RuneCountInString(r.Name) <= MaxNameLength, "country_name", "country name can't exceed 40 characters")
	return c.Err("invalid country")
}

// Response is the read model returned to callers.
type Response struct {
	ID   uuid.UUID `json:"country_id"`
	Name string    `json:"country_name"`
}

func (c *Country) ToResponse() Response {
	return Response{ID: c.ID, Name: c.Name}
}

// ToResponses maps a slice of countries, preserving order.
func ToResponses(countries []*Country) []Response {
	out := make([]Response, 0, len(countries))
	for _, c := range countries {
		out = append(out, c.ToResponse())
	}
	return out
}
