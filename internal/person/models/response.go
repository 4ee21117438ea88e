package models

import (
	"bytes"
	"cmp"
	"time"

	"github.com/google/uuid"

	"persons/pkg/fieldsort"
)

// Response is the person read model rendered by every endpoint.
type Response struct {
	ID                 uuid.UUID  `json:"person_id"`
	Name               string     `json:"person_name"`
	Email              string     `json:"email"`
	DateOfBirth        *time.Time `json:"date_of_birth,omitempty"`
	Gender             string     `json:"gender"`
	CountryID          *uuid.UUID `json:"country_id,omitempty"`
	Country            string     `json:"country,omitempty"`
	Address            string     `json:"address"`
	ReceiveNewsLetters bool       `json:"receive_news_letters"`
	TIN                string     `json:"tin"`
	Age                *int       `json:"age,omitempty"`
}

// ToUpdateRequest pre-populates the edit form.
func (r Response) ToUpdateRequest() UpdatePersonRequest {
	return UpdatePersonRequest{
		ID:                 r.ID,
		Name:               r.Name,
		Email:              r.Email,
		DateOfBirth:        r.DateOfBirth,
		Gender:             r.Gender,
		CountryID:          r.CountryID,
		Address:            r.Address,
		ReceiveNewsLetters: r.ReceiveNewsLetters,
		TIN:                r.TIN,
	}
}

// Equal reports field-by-field equality over every column in SortFields.
func (r Response) Equal(other Response) bool {
	return SortFields.Equal(r, other)
}

func compareUUID(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

func compareTime(a, b time.Time) int {
	return a.Compare(b)
}

// SortFields is the accessor table for Response. Keys are the names accepted
// by the sortBy query parameter.
var SortFields = fieldsort.Fields[Response]{
	"PersonID":           fieldsort.Ordered(func(r Response) string { return r.ID.String() }),
	"PersonName":         fieldsort.Text(func(r Response) string { return r.Name }),
	"Email":              fieldsort.Text(func(r Response) string { return r.Email }),
	"DateOfBirth":        fieldsort.Optional(func(r Response) *time.Time { return r.DateOfBirth }, compareTime),
	"Gender":             fieldsort.Text(func(r Response) string { return r.Gender }),
	"CountryID":          fieldsort.Optional(func(r Response) *uuid.UUID { return r.CountryID }, compareUUID),
	"Country":            fieldsort.Text(func(r Response) string { return r.Country }),
	"Address":            fieldsort.Text(func(r Response) string { return r.Address }),
	"ReceiveNewsLetters": fieldsort.Bool(func(r Response) bool { return r.ReceiveNewsLetters }),
	"TIN":                fieldsort.Text(func(r Response) string { return r.TIN }),
	"Age":                fieldsort.Optional(func(r Response) *int { return r.Age }, cmp.Compare[int]),
}

// SearchField names a column the index can be filtered by.
type SearchField string

const (
	SearchPersonName  SearchField = "PersonName"
	SearchEmail       SearchField = "Email"
	SearchDateOfBirth SearchField = "DateOfBirth"
	SearchGender      SearchField = "Gender"
	SearchCountryID   SearchField = "CountryID"
	SearchAddress     SearchField = "Address"
)

// SearchOption is one entry of the index search drop-down.
type SearchOption struct {
	Field SearchField `json:"field"`
	Label string      `json:"label"`
}

// SearchOptions lists the searchable fields in display order.
var SearchOptions = []SearchOption{
	{Field: SearchPersonName, Label: "Person Name"},
	{Field: SearchEmail, Label: "Email"},
	{Field: SearchDateOfBirth, Label: "Date of Birth"},
	{Field: SearchGender, Label: "Gender"},
	{Field: SearchCountryID, Label: "Country"},
	{Field: SearchAddress, Label: "Address"},
}

// ParseSearchField returns the field and whether it is searchable.
func ParseSearchField(s string) (SearchField, bool) {
	for _, o := range SearchOptions {
		if string(o.Field) == s {
			return o.Field, true
		}
	}
	return "", false
}

// DateOfBirthLayout is the rendering DateOfBirth searches match against.
const DateOfBirthLayout = "02 January 2006"

// Filter selects persons whose Field contains Term, ignoring case. An empty
// Term or unknown Field selects everyone.
type Filter struct {
	Field SearchField
	Term  string
}

// MatchesAll reports whether the filter selects every person.
func (f Filter) MatchesAll() bool {
	if f.Term == "" {
		return true
	}
	_, ok := ParseSearchField(string(f.Field))
	return !ok
}
