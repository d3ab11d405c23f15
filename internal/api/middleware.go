package api

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/metcal/asset-api/internal/auth"
	"github.com/metcal/asset-api/internal/models"
)

// RequestLogger logs one line per request: method, path, status, duration,
// client IP, and the authenticated user when there is one.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		r = r.WithContext(auth.WithUserRecorder(r.Context()))
		next.ServeHTTP(ww, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Float64("duration_ms", float64(time.Since(start).Microseconds())/1000).
			Str("ip", r.RemoteAddr).
			Str("user", auth.RecordedUser(r.Context())).
			Msg("request")
	})
}

// Recoverer turns any handler panic into a well-formed 500 JSON response.
// The panic value and stack are logged server-side only.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("unhandled error")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.ErrorResponse{Detail: "Internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
