package metadata

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"persons/pkg/requestcontext"
)

func TestClientIPFromRequest(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain takes first", map[string]string{"X-Forwarded-For": "1.1.1.1, 2.2.2.2"}, "3.3.3.3:80", "1.1.1.1"},
		{"real ip header", map[string]string{"X-Real-IP": " 4.4.4.4 "}, "3.3.3.3:80", "4.4.4.4"},
		{"remote addr v4", nil, "5.5.5.5:1234", "5.5.5.5"},
		{"remote addr v6", nil, "[::1]:1234", "::1"},
		{"oversized forwarded value falls back", map[string]string{"X-Forwarded-For": strings.Repeat("a", 100)}, "5.5.5.5:1234", "5.5.5.5"},
		{"garbage real ip falls back", map[string]string{"X-Real-IP": "<script>"}, "5.5.5.5:1234", "5.5.5.5"},
		{"unparseable everything", map[string]string{"X-Forwarded-For": "nope"}, "pipe", "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, ClientIPFromRequest(r))
		})
	}
}

func TestClientMetadataMiddleware(t *testing.T) {
	var gotIP, gotUA string
	h := ClientMetadata(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotIP = requestcontext.ClientIP(r.Context())
		gotUA = requestcontext.UserAgent(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "9.9.9.9:1"
	r.Header.Set("User-Agent", "test-agent")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "9.9.9.9", gotIP)
	assert.Equal(t, "test-agent", gotUA)
}
