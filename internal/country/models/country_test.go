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

func TestNewCountry(t *testing.T) {
	now := time.Now()

	c, err := NewCountry(uuid.New(), "  Canada ", now)
	require.NoError(t, err)
	assert.Equal(t, "Canada", c.Name)

	_, err = NewCountry(uuid.Nil, "Canada", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = NewCountry(uuid.New(), " ", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = NewCountry(uuid.New(), strings.Repeat("x", MaxNameLength+1), now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestAddCountryRequestValidate(t *testing.T) {
	var nilReq *AddCountryRequest
	assert.True(t, dErrors.HasCode(nilReq.Validate(), dErrors.CodeBadRequest))

	req := &AddCountryRequest{Name: "  "}
	req.Normalize()
	err := req.Validate()
	assert.Equal(t, []string{"country_name"}, dErrors.SortedFieldNames(err))

	req = &AddCountryRequest{Name: "India"}
	assert.NoError(t, req.Validate())
}
