package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWriteErrorMapsDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound("team", "abc"), 404, "NOT_FOUND"},
		{"insufficient funds", domain.ErrInsufficientFunds("Alpha"), 400, "INSUFFICIENT_FUNDS"},
		{"invalid state", domain.ErrInvalidState("nope"), 409, "INVALID_STATE"},
		{"tx conflict", domain.ErrTxConflict(nil), 409, "TX_CONFLICT"},
		{"opaque internal", assert.AnError, 500, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, testLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWriteErrorNeverLeaksInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, testLogger(), domain.ErrInternal("db exploded", assert.AnError))

	assert.Equal(t, 500, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestIdempotencyMiddleware(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	mw := Idempotency(guard.NewIdempotencyGuard(time.Hour))(next)

	do := func(method, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/admin/teams", nil)
		if key != "" {
			req.Header.Set("Idempotency-Key", key)
		}
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, do(http.MethodPost, "k1").Code)
	assert.Equal(t, 1, calls)

	rec := do(http.MethodPost, "k1")
	assert.Equal(t, http.StatusConflict, rec.Code, "duplicate key rejected")
	assert.Equal(t, 1, calls)

	// GETs bypass the guard entirely.
	require.Equal(t, http.StatusOK, do(http.MethodGet, "k1").Code)

	// No key means no deduplication.
	require.Equal(t, http.StatusOK, do(http.MethodPost, "").Code)
	require.Equal(t, http.StatusOK, do(http.MethodPost, "").Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := RateLimit(guard.NewRateLimiter(2, time.Minute))(next)

	do := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/team/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("t1"))
	assert.Equal(t, http.StatusOK, do("t1"))
	assert.Equal(t, http.StatusTooManyRequests, do("t1"))
	assert.Equal(t, http.StatusOK, do("t2"), "independent budget per caller")
}
