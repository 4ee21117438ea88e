// Package testutil provides common test utilities for handler and integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"persons/pkg/platform/httputil"
	"persons/pkg/requestcontext"
)

// Registrar is implemented by every handler that mounts its routes on chi.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter mounts the handlers on a bare chi router.
func NewRouter(handlers ...Registrar) chi.Router {
	r := chi.NewRouter()
	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

// NewJSONRequest creates an HTTP request with a JSON body and a request ID in context.
// The body is marshaled to JSON automatically; raw strings are sent verbatim.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b), "failed to marshal request body")
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(requestcontext.WithRequestID(req.Context(), "test-request"))
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// UnmarshalResponse unmarshals the response body into T.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var result T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result), "failed to unmarshal response: %s", rr.Body.String())
	return &result
}

// AssertStatusAndError asserts both status code and error code.
func AssertStatusAndError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedCode string) *httputil.ErrorResponse {
	t.Helper()
	assert.Equal(t, expectedStatus, rr.Code, "unexpected status code: %s", rr.Body.String())
	errResp := UnmarshalResponse[httputil.ErrorResponse](t, rr)
	assert.Equal(t, expectedCode, errResp.Error, "unexpected error code")
	return errResp
}

// AssertFieldError asserts a validation response names field.
func AssertFieldError(t *testing.T, rr *httptest.ResponseRecorder, field string) {
	t.Helper()
	errResp := AssertStatusAndError(t, rr, http.StatusUnprocessableEntity, "validation_error")
	assert.Contains(t, errResp.Fields, field, "expected field error for %q", field)
}
