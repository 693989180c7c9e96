package config

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/taekwondodev/ledger-auth/internal/interceptors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	Server          *grpc.Server
	Health          *health.Server
	config          GRPCConfig
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

type GRPCConfig struct {
	TLSCertFile string
	TLSKeyFile  string
	CACertFile  string
	Port        string
}

func (c GRPCConfig) tlsEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != "" && c.CACertFile != ""
}

func NewGRPCServer(cfg GRPCConfig, logger *slog.Logger, shutdownTimeout time.Duration) (*GRPCServer, error) {
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			interceptors.LoggingInterceptor(logger),
			interceptors.ErrorInterceptor(logger),
		),
	}

	if cfg.tlsEnabled() {
		creds, err := loadTLSCredentials(cfg)
		if err != nil {
			return nil, fmt.Errorf("load TLS credentials: %w", err)
		}
		opts = append(opts, grpc.Creds(creds))
	} else {
		logger.Warn("gRPC TLS files not configured, serving without transport security")
	}

	grpcServer := grpc.NewServer(opts...)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return &GRPCServer{
		Server:          grpcServer,
		Health:          healthServer,
		config:          cfg,
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Run serves until ctx is cancelled, then stops gracefully, forcing the stop
// once the shutdown timeout elapses.
func (s *GRPCServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", ":"+s.config.Port)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	return s.Serve(ctx, lis)
}

func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
		serverErrors <- s.Server.Serve(lis)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("starting gRPC graceful shutdown")
		s.Health.Shutdown()
		s.GracefulShutdown(s.shutdownTimeout)
		return nil
	}
}

func (s *GRPCServer) GracefulShutdown(timeout time.Duration) {
	stopped := make(chan struct{})
	go func() {
		s.Server.GracefulStop()
		close(stopped)
	}()

	timer := time.NewTimer(timeout)
	select {
	case <-timer.C:
		s.logger.Warn("timeout reached, forcing gRPC shutdown")
		s.Server.Stop()
	case <-stopped:
		timer.Stop()
		s.logger.Info("gRPC server stopped gracefully")
	}
}

func loadTLSCredentials(cfg GRPCConfig) (credentials.TransportCredentials, error) {
	serverCert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, cfg.TLSKeyFile)
	if err != nil {
		return nil, err
	}

	caCert, err := os.ReadFile(cfg.CACertFile)
	if err != nil {
		return nil, err
	}

	certPool := x509.NewCertPool()
	if !certPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("no certificates found in %s", cfg.CACertFile)
	}

	config := &tls.Config{
		Certificates: []tls.Certificate{serverCert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    certPool,
		MinVersion:   tls.VersionTLS13,
	}

	return credentials.NewTLS(config), nil
}
