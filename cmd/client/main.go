// Command client logs in against the gRPC endpoint and checks the issued token.
package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	authgrpc "github.com/taekwondodev/ledger-auth/internal/auth/grpc"
	"github.com/taekwondodev/ledger-auth/internal/dto"
	"github.com/taekwondodev/ledger-auth/internal/logging"
)

func main() {
	addr := flag.String("addr", "localhost:50051", "gRPC server address")
	username := flag.String("username", "", "username to log in with")
	password := flag.String("password", "", "password to log in with")
	certFile := flag.String("cert", "", "client certificate for mutual TLS")
	keyFile := flag.String("key", "", "client key for mutual TLS")
	caFile := flag.String("ca", "", "CA bundle used to verify the server")
	flag.Parse()

	logger := logging.New("ledger-auth-client", "info")

	if err := run(*addr, *username, *password, *certFile, *keyFile, *caFile, logger); err != nil {
		logger.Error("client failed", "error", err)
		os.Exit(1)
	}
}

func run(addr, username, password, certFile, keyFile, caFile string, logger *slog.Logger) error {
	creds, err := transportCredentials(certFile, keyFile, caFile)
	if err != nil {
		return err
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := authgrpc.NewClient(conn)

	login, err := client.Login(ctx, &dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return err
	}
	if !login.Success {
		return fmt.Errorf("login rejected: %s", login.Message)
	}

	valid, err := client.Validate(ctx, &dto.ValidateTokenRequest{Token: login.Token})
	if err != nil {
		return err
	}

	logger.Info("logged in", "user_id", login.User.ID, "token_valid", valid.IsValid)
	return nil
}

func transportCredentials(certFile, keyFile, caFile string) (credentials.TransportCredentials, error) {
	if certFile == "" || keyFile == "" || caFile == "" {
		return insecure.NewCredentials(), nil
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, err
	}

	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, err
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("no certificates found in %s", caFile)
	}

	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS13,
	}), nil
}
