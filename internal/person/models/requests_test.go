package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "persons/pkg/domain-errors"
)

func TestAddPersonRequestNormalize(t *testing.T) {
	nilID := uuid.Nil
	req := &AddPersonRequest{
		Name:      "  Ada   Lovelace ",
		Email:     " Ada@Example.COM ",
		Gender:    "female",
		CountryID: &nilID,
		TIN:       " abc12345 ",
	}
	req.Normalize()

	assert.Equal(t, "Ada Lovelace", req.Name)
	assert.Equal(t, "Ada@example.com", req.Email)
	assert.Equal(t, "Female", req.Gender)
	assert.Nil(t, req.CountryID)
	assert.Equal(t, "ABC12345", req.TIN)
	assert.NoError(t, req.Validate())
}

func TestNormalizeKeepsCalendarDateOfBirth(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	born := time.Date(1990, 6, 1, 8, 30, 0, 0, tokyo)
	want := time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC)

	add := &AddPersonRequest{DateOfBirth: &born}
	add.Normalize()
	require.NotNil(t, add.DateOfBirth)
	assert.Equal(t, want, *add.DateOfBirth)
	assert.Equal(t, time.UTC, add.DateOfBirth.Location())

	update := &UpdatePersonRequest{DateOfBirth: &born}
	update.Normalize()
	require.NotNil(t, update.DateOfBirth)
	assert.Equal(t, want, *update.DateOfBirth)

	none := &AddPersonRequest{}
	none.Normalize()
	assert.Nil(t, none.DateOfBirth)
}

func TestAddPersonRequestValidate(t *testing.T) {
	var nilReq *AddPersonRequest
	assert.True(t, dErrors.HasCode(nilReq.Validate(), dErrors.CodeBadRequest))

	future := time.Now().Add(48 * time.Hour)
	tests := []struct {
		name   string
		req    AddPersonRequest
		fields []string
	}{
		{
			name:   "empty request",
			req:    AddPersonRequest{},
			fields: []string{"email", "gender", "person_name"},
		},
		{
			name:   "bad email and gender",
			req:    AddPersonRequest{Name: "Ada", Email: "ada.example.com", Gender: "robot"},
			fields: []string{"email", "gender"},
		},
		{
			name: "too long values",
			req: AddPersonRequest{
				Name:    strings.Repeat("a", MaxNameLength+1),
				Email:   "ada@example.com",
				Gender:  "Male",
				Address: strings.Repeat("b", MaxAddressLength+1),
			},
			fields: []string{"address", "person_name"},
		},
		{
			name:   "future birth date and short tin",
			req:    AddPersonRequest{Name: "Ada", Email: "ada@example.com", Gender: "Other", DateOfBirth: &future, TIN: "A1"},
			fields: []string{"date_of_birth", "tin"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tt.fields, dErrors.SortedFieldNames(err))
		})
	}
}

func TestAddPersonRequestToPerson(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	id := uuid.New()
	req := &AddPersonRequest{Name: "Ada", Email: "ada@example.com", Gender: "Female", ReceiveNewsLetters: true}

	p := req.ToPerson(id, now)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, GenderFemale, p.Gender)
	assert.Equal(t, DefaultTIN, p.TIN)
	assert.True(t, p.ReceiveNewsLetters)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestUpdatePersonRequest(t *testing.T) {
	t.Run("requires person id", func(t *testing.T) {
		req := &UpdatePersonRequest{Name: "Ada", Email: "ada@example.com", Gender: "Female"}
		assert.Equal(t, []string{"person_id"}, dErrors.SortedFieldNames(req.Validate()))
	})

	t.Run("apply keeps stored tin when empty", func(t *testing.T) {
		created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		now := created.AddDate(1, 0, 0)
		p := &Person{ID: uuid.New(), TIN: "XYZ98765", CreatedAt: created}

		req := &UpdatePersonRequest{ID: p.ID, Name: "Ada", Email: "ada@example.com", Gender: "male"}
		req.Normalize()
		require.NoError(t, req.Validate())
		req.ApplyTo(p, now)

		assert.Equal(t, "XYZ98765", p.TIN)
		assert.Equal(t, GenderMale, p.Gender)
		assert.Equal(t, created, p.CreatedAt)
		assert.Equal(t, now, p.UpdatedAt)

		req.TIN = "NEW12345"
		req.ApplyTo(p, now)
		assert.Equal(t, "NEW12345", p.TIN)
	})
}
