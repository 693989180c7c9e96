package api

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"
	"github.com/taekwondodev/ledger-auth/internal/controller"
	"github.com/taekwondodev/ledger-auth/internal/middleware"
)

type Middleware func(middleware.HandlerFunc) middleware.HandlerFunc

type RouterOptions struct {
	AllowedOrigins []string
	// TransactionAuth guards the transaction listing when set.
	TransactionAuth Middleware
}

type router struct {
	mux    *http.ServeMux
	logger *slog.Logger
}

func SetupRoutes(
	logger *slog.Logger,
	authController *controller.AuthController,
	transactionController *controller.TransactionController,
	opts RouterOptions,
) http.Handler {
	r := &router{mux: http.NewServeMux(), logger: logger}

	r.setupAuthRoutes(authController)
	r.setupTransactionRoutes(transactionController, opts.TransactionAuth)
	r.setupSystemRoutes(authController)

	return cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
	}).Handler(r.mux)
}

func (r *router) applyMiddleware(h middleware.HandlerFunc) http.HandlerFunc {
	return middleware.ErrorHandler(r.logger,
		middleware.TrustProxyMiddleware(
			middleware.LoggingMiddleware(r.logger)(h),
		),
	)
}

func (r *router) setupAuthRoutes(authController *controller.AuthController) {
	r.mux.Handle("POST /api/auth/login", r.applyMiddleware(authController.Login))
	r.mux.Handle("POST /api/auth/register", r.applyMiddleware(authController.Register))
	r.mux.Handle("POST /api/auth/validate", r.applyMiddleware(authController.Validate))
}

func (r *router) setupTransactionRoutes(transactionController *controller.TransactionController, auth Middleware) {
	h := middleware.HandlerFunc(transactionController.GetAll)
	if auth != nil {
		h = auth(h)
	}
	r.mux.Handle("GET /api/transaction", r.applyMiddleware(h))
}

func (r *router) setupSystemRoutes(authController *controller.AuthController) {
	r.mux.Handle("GET /healthz", r.applyMiddleware(authController.HealthCheck))
}
