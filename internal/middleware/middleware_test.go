package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/linkinbio-be/internal/auth"
	"github.com/hongminglow/linkinbio-be/internal/models"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS_AllowAll(t *testing.T) {
	h := CORS([]string{"*"}, okHandler)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORS_Allowlist(t *testing.T) {
	h := CORS([]string{"https://App.example"}, okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	h := CORS([]string{"*"}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	req := httptest.NewRequest(http.MethodOptions, "/edit-profile", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, called)
}

func TestLogging_SetsRequestIDAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := Logging(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	out := buf.String()
	assert.Contains(t, out, "path=/health")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "level=WARN")
}

func TestLogging_KeepsIncomingRequestID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	Logging(logger, okHandler).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "linkinbio")
	guard := auth.NewGuard(tokens)
	var seen auth.Identity
	h := RequireAuth(guard, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := IdentityFromContext(r.Context()); ok {
			seen = id
		}
		w.WriteHeader(http.StatusOK)
	}))

	valid, err := tokens.Generate(models.User{ID: 3, Email: "o@example.com"})
	require.NoError(t, err)
	forged, err := auth.NewTokenManager("other", "linkinbio").Generate(models.User{ID: 3, Email: "o@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"no token segment", "Bearer", http.StatusUnauthorized},
		{"bad signature", "Bearer " + forged, http.StatusForbidden},
		{"garbage", "Bearer garbage", http.StatusForbidden},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
	assert.Equal(t, auth.Identity{UserID: 3, Email: "o@example.com"}, seen)
}
