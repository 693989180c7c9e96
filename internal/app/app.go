// Package app wires the stores, services and transports together and runs
// them until the process is asked to stop.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/taekwondodev/ledger-auth/internal/api"
	authgrpc "github.com/taekwondodev/ledger-auth/internal/auth/grpc"
	"github.com/taekwondodev/ledger-auth/internal/auth/password"
	authrepo "github.com/taekwondodev/ledger-auth/internal/auth/repository"
	authservice "github.com/taekwondodev/ledger-auth/internal/auth/service"
	"github.com/taekwondodev/ledger-auth/internal/config"
	"github.com/taekwondodev/ledger-auth/internal/controller"
	"github.com/taekwondodev/ledger-auth/internal/logging"
	"github.com/taekwondodev/ledger-auth/internal/middleware"
	"github.com/taekwondodev/ledger-auth/internal/migrations"
	txrepo "github.com/taekwondodev/ledger-auth/internal/transaction/repository"
	txservice "github.com/taekwondodev/ledger-auth/internal/transaction/service"
)

const ServiceName = "ledger-auth"

type App struct {
	cfg        config.Config
	logger     *slog.Logger
	handler    http.Handler
	httpServer *api.Server
	grpcServer *config.GRPCServer
	closeStore func()
}

type stores struct {
	users        authrepo.UserRepository
	transactions txrepo.TransactionRepository
	close        func()
}

// Run is the process entry point: it loads the configuration from the
// environment and serves until SIGINT or SIGTERM.
func Run() error {
	logger := logging.New(ServiceName, config.GetString("LOG_LEVEL", "info"))
	cfg := config.Load(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	hasher, err := password.New(cfg.PasswordHasher)
	if err != nil {
		return nil, err
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	jwt := config.NewJWT(cfg.JWTSecret, cfg.JWTExpiration)
	authService := authservice.NewAuthService(st.users, hasher, jwt, logger)
	transactionService := txservice.NewTransactionService(st.transactions, logger)

	opts := api.RouterOptions{AllowedOrigins: cfg.AllowedOrigins}
	if cfg.TransactionsRequireAuth {
		opts.TransactionAuth = middleware.RequireAuth(jwt)
	}

	handler := api.SetupRoutes(logger,
		controller.NewAuthController(authService),
		controller.NewTransactionController(transactionService),
		opts,
	)

	a := &App{
		cfg:        cfg,
		logger:     logger,
		handler:    handler,
		httpServer: api.NewServer(cfg.HTTPAddr, handler, logger, cfg.ShutdownTimeout),
		closeStore: st.close,
	}

	if cfg.GRPCEnabled {
		grpcServer, err := config.NewGRPCServer(cfg.GRPC, logger, cfg.ShutdownTimeout)
		if err != nil {
			st.close()
			return nil, err
		}
		authgrpc.RegisterAuthServiceServer(grpcServer.Server, authgrpc.NewServer(authService))
		a.grpcServer = grpcServer
	}

	return a, nil
}

// Handler exposes the HTTP routes without a listener.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run blocks until ctx is cancelled or one of the servers fails, in which
// case the other one is shut down too.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.httpServer.Run(ctx)
	})

	if a.grpcServer != nil {
		g.Go(func() error {
			return a.grpcServer.Run(ctx)
		})
	}

	return g.Wait()
}

func (a *App) Close() {
	if a.closeStore != nil {
		a.closeStore()
	}
}

func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres, config.DriverPgx:
		pg, err := config.NewPostgres(cfg.DBDriver, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		if err := pg.InitDB(ctx); err != nil {
			pg.CloseDB()
			return nil, err
		}
		if err := migrations.Up(ctx, pg.Db); err != nil {
			pg.CloseDB()
			return nil, err
		}

		return &stores{
			users:        authrepo.NewUserRepository(pg.Db),
			transactions: txrepo.NewTransactionRepository(pg.Db),
			close:        pg.CloseDB,
		}, nil

	case config.DriverSQLite:
		db, err := config.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite database opened", "path", cfg.SQLitePath)

		return &stores{
			users:        authrepo.NewGormUserRepository(db),
			transactions: txrepo.NewGormTransactionRepository(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					sqlDB.Close()
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
