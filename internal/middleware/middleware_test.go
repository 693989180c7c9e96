package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taekwondodev/ledger-auth/internal/config"
	customerrors "github.com/taekwondodev/ledger-auth/internal/customErrors"
	"github.com/taekwondodev/ledger-auth/internal/logging"
	"github.com/taekwondodev/ledger-auth/internal/middleware"
	"github.com/taekwondodev/ledger-auth/internal/models"
)

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "Custom error",
			err:             customerrors.ErrBadRequest,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "bad request",
		},
		{
			name:            "Expired token",
			err:             jwt.ErrTokenExpired,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "authentication required",
		},
		{
			name:            "Unknown error is sanitized",
			err:             errors.New("pq: relation \"users\" does not exist"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal server error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			logger := logging.NewWithWriter(&logs, "test", "debug")

			h := middleware.ErrorHandler(logger, func(w http.ResponseWriter, r *http.Request) error {
				return tc.err
			})

			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body customerrors.Error
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.expectedStatus, body.Code)
			assert.Equal(t, tc.expectedMessage, body.Message)

			if tc.expectedStatus >= http.StatusInternalServerError {
				assert.Contains(t, logs.String(), "does not exist")
			}
		})
	}

	t.Run("No error leaves response alone", func(t *testing.T) {
		t.Parallel()

		h := middleware.ErrorHandler(logging.Discard(), func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusTeapot)
			return nil
		})

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("Generates request id", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		h := middleware.LoggingMiddleware(logging.NewWithWriter(&logs, "test", "info"))(
			func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusCreated)
				return nil
			})

		rec := httptest.NewRecorder()
		require.NoError(t, h(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)))

		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
		assert.Equal(t, "POST", entry["method"])
		assert.Equal(t, "/api/auth/login", entry["path"])
		assert.Equal(t, float64(http.StatusCreated), entry["status"])
		assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), entry["request_id"])
	})

	t.Run("Keeps incoming request id and logs error status", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		h := middleware.LoggingMiddleware(logging.NewWithWriter(&logs, "test", "info"))(
			func(w http.ResponseWriter, r *http.Request) error {
				return customerrors.ErrUnauthorized
			})

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()

		assert.ErrorIs(t, h(rec, req), customerrors.ErrUnauthorized)
		assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
		assert.Equal(t, "req-123", entry["request_id"])
		assert.Equal(t, float64(http.StatusUnauthorized), entry["status"])
	})
}

func TestTrustProxyMiddleware(t *testing.T) {
	t.Parallel()

	var scheme, host string
	h := middleware.TrustProxyMiddleware(func(w http.ResponseWriter, r *http.Request) error {
		scheme, host = r.URL.Scheme, r.Host
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("X-Forwarded-Host", "ledger.example.com")

	require.NoError(t, h(httptest.NewRecorder(), req))
	assert.Equal(t, "https", scheme)
	assert.Equal(t, "ledger.example.com", host)
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	issuer := config.NewJWT("middleware-test-secret-32-bytes!!", time.Hour)
	valid, err := issuer.GenerateJWT(&models.User{ID: 3, Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	expired, err := config.NewJWT("middleware-test-secret-32-bytes!!", time.Hour).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		GenerateJWT(&models.User{ID: 3, Username: "alice"})
	require.NoError(t, err)

	testCases := []struct {
		name          string
		header        string
		expectedError error
	}{
		{name: "Valid token", header: "Bearer " + valid},
		{name: "Lowercase scheme", header: "bearer " + valid},
		{name: "Missing header", header: "", expectedError: customerrors.ErrUnauthorized},
		{name: "Wrong scheme", header: "Basic " + valid, expectedError: customerrors.ErrUnauthorized},
		{name: "Empty token", header: "Bearer ", expectedError: customerrors.ErrUnauthorized},
		{name: "Expired token", header: "Bearer " + expired, expectedError: jwt.ErrTokenExpired},
		{name: "Garbage token", header: "Bearer abc.def.ghi", expectedError: jwt.ErrSignatureInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var username string
			h := middleware.RequireAuth(issuer)(func(w http.ResponseWriter, r *http.Request) error {
				claims, ok := middleware.ClaimsFromContext(r.Context())
				require.True(t, ok)
				username = claims.Username
				return nil
			})

			req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			err := h(httptest.NewRecorder(), req)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Empty(t, username)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", username)
		})
	}
}
