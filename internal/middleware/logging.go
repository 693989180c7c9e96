package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	customerrors "github.com/taekwondodev/ledger-auth/internal/customErrors"
)

const RequestIDHeader = "X-Request-ID"

// statusRecorder captures the status a handler wrote on success paths.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func LoggingMiddleware(logger *slog.Logger) func(HandlerFunc) HandlerFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			err := next(rec, r)

			status := rec.status
			if err != nil {
				status = customerrors.GetStatus(err)
			}

			logger.InfoContext(r.Context(), "http request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", time.Since(start),
				"request_id", requestID,
			)

			return err
		}
	}
}
