package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCodeThroughWrapping(t *testing.T) {
	base := New(CodeConflict, "country name must be unique")
	wrapped := fmt.Errorf("create: %w", base)

	assert.True(t, HasCode(wrapped, CodeConflict))
	assert.False(t, HasCode(wrapped, CodeNotFound))
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to load person")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to load person")
}

func TestCollector(t *testing.T) {
	t.Run("no failures yields nil", func(t *testing.T) {
		var c Collector
		c.Check(true, "email", "email is required")
		assert.NoError(t, c.Err("invalid person"))
	})

	t.Run("reports every failing field", func(t *testing.T) {
		var c Collector
		c.Check(false, "person_name", "person name can't be blank")
		c.Check(false, "email", "email can't be blank")
		c.Add("email", "email should be a valid email")

		err := c.Err("invalid person")
		require.Error(t, err)
		assert.True(t, HasCode(err, CodeValidation))
		assert.Equal(t, []string{"email", "person_name"}, SortedFieldNames(err))

		var de *Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "email can't be blank; email should be a valid email", de.FieldMap()["email"])
	})
}

func TestWireCodes(t *testing.T) {
	assert.Equal(t, []string{
		"bad_request", "validation_error", "not_found", "conflict",
		"unauthorized", "invariant_violation", "timeout", "internal_error",
	}, []string{
		string(CodeBadRequest), string(CodeValidation), string(CodeNotFound), string(CodeConflict),
		string(CodeUnauthorized), string(CodeInvariantViolation), string(CodeTimeout), string(CodeInternal),
	})
}
