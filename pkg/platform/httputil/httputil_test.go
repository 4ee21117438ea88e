package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "persons/pkg/domain-errors"
)

type nameRequest struct {
	Name string `json:"name"`
}

func (r *nameRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r *nameRequest) Validate() error {
	var c dErrors.Collector
	c.Check(r.Name != "", "name", "name is required")
	return c.Err("invalid request")
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", dErrors.New(dErrors.CodeNotFound, "person not found"), http.StatusNotFound, "not_found"},
		{"conflict", dErrors.New(dErrors.CodeConflict, "duplicate"), http.StatusConflict, "conflict"},
		{"bad request", dErrors.New(dErrors.CodeBadRequest, "nil"), http.StatusBadRequest, "bad_request"},
		{"unknown error hides details", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tc.err)
			assert.Equal(t, tc.status, rr.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error)
			assert.NotContains(t, body.Description, "pq:")
		})
	}
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("normalizes and validates", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"  Ann  "}`))
		rr := httptest.NewRecorder()
		req, ok := DecodeAndPrepare[nameRequest](rr, r, logger, context.Background(), "req-1")
		require.True(t, ok)
		assert.Equal(t, "Ann", req.Name)
	})

	t.Run("field errors are reported", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"   "}`))
		rr := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[nameRequest](rr, r, logger, context.Background(), "req-1")
		require.False(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "name is required", body.Fields["name"])
	})

	t.Run("empty body is a bad request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		rr := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[nameRequest](rr, r, logger, context.Background(), "req-1")
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ann","extra":1}`))
		rr := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[nameRequest](rr, r, logger, context.Background(), "req-1")
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
