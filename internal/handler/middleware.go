package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/campusopoly/platform/internal/guard"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one structured line per request.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// RateLimit rejects callers exceeding the sliding-window limit. Keyed by
// bearer token so each team or admin gets an independent budget.
func RateLimit(rl *guard.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if key == "" {
				key = r.RemoteAddr
			}
			if res := rl.Check(r.Context(), key); !res.Allowed {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{
					"code":    "LIMIT_EXCEEDED",
					"message": res.Reason,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Idempotency deduplicates mutations carrying an Idempotency-Key header.
// Reads pass through untouched.
func Idempotency(ig *guard.IdempotencyGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			key := r.Header.Get("Idempotency-Key")
			if res := ig.Check(r.Context(), key); !res.Allowed {
				writeJSON(w, http.StatusConflict, map[string]string{
					"code":    "INVALID_STATE",
					"message": res.Reason,
				})
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			// A failed request releases the key so the caller can retry it.
			if key != "" && ww.Status() >= 500 {
				ig.Remove(key)
			}
		})
	}
}
