package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	customerrors "github.com/taekwondodev/ledger-auth/internal/customErrors"
)

type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

func ErrorHandler(logger *slog.Logger, h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			handleHttpError(w, r, logger, err)
		}
	}
}

func handleHttpError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := customerrors.GetStatus(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	res := &customerrors.Error{
		Code:    status,
		Message: customerrors.GetMessage(err),
	}

	json.NewEncoder(w).Encode(res)
}
