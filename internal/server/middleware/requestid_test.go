package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureID(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequestID_Generated(t *testing.T) {
	var seen string
	rec := httptest.NewRecorder()
	RequestID(captureID(&seen)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	var seen string
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	RequestID(captureID(&seen)).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRequestID_ReplacesOversizedIncoming(t *testing.T) {
	var seen string
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	RequestID(captureID(&seen)).ServeHTTP(httptest.NewRecorder(), req)

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}
