package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite"

	DefaultJWTSecret         = "your-256-bit-secret-key-for-jwt-authentication-here!"
	DefaultExpirationMinutes = 60
)

type Config struct {
	Environment string
	LogLevel    string

	HTTPAddr        string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	GRPCEnabled bool
	GRPC        GRPCConfig

	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	JWTSecret     string
	JWTExpiration time.Duration

	PasswordHasher          string
	TransactionsRequireAuth bool
}

// Load reads the configuration from the environment. Every value has a
// default so the service starts with an empty environment.
func Load(logger *slog.Logger) Config {
	cfg := Config{
		Environment:     GetString("APP_ENV", "development"),
		LogLevel:        GetString("LOG_LEVEL", "info"),
		HTTPAddr:        GetString("HTTP_ADDR", ":5000"),
		ShutdownTimeout: time.Duration(GetInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		AllowedOrigins:  GetList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:4200"}),
		GRPCEnabled:     GetBool("GRPC_ENABLED", true),
		GRPC: GRPCConfig{
			TLSCertFile: GetString("TLS_CERT_FILE", ""),
			TLSKeyFile:  GetString("TLS_KEY_FILE", ""),
			CACertFile:  GetString("TLS_CA_FILE", ""),
			Port:        GetString("GRPC_PORT", "50051"),
		},
		DBDriver:                strings.ToLower(GetString("DB_DRIVER", DriverPostgres)),
		DatabaseURL:             GetString("DATABASE_URL", ""),
		SQLitePath:              GetString("SQLITE_PATH", "ledger.db"),
		JWTSecret:               GetString("JWT_SECRET", ""),
		PasswordHasher:          GetString("PASSWORD_HASHER", "bcrypt"),
		TransactionsRequireAuth: GetBool("TRANSACTIONS_REQUIRE_AUTH", false),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = postgresConnStr()
	}

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not defined, falling back to the built-in signing secret")
		cfg.JWTSecret = DefaultJWTSecret
	}

	minutes := GetInt("JWT_EXPIRATION_MINUTES", DefaultExpirationMinutes)
	if minutes <= 0 {
		logger.Warn("JWT_EXPIRATION_MINUTES must be positive, using default", "value", minutes)
		minutes = DefaultExpirationMinutes
	}
	cfg.JWTExpiration = time.Duration(minutes) * time.Minute

	return cfg
}

func postgresConnStr() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s sslrootcert=%s",
		GetString("DB_HOST", "localhost"),
		GetString("DB_PORT", "5432"),
		GetString("POSTGRES_USER", "postgres"),
		GetString("POSTGRES_PASSWORD", "postgres"),
		GetString("POSTGRES_DB", "ledger"),
		GetString("DB_SSLMODE", "disable"),
		GetString("DB_SSLROOTCERT", ""),
	)
}

// GetString retrieves an environment variable or returns a fallback when unset.
func GetString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetInt retrieves an environment variable as integer or returns fallback.
func GetInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			slog.Warn("invalid integer in environment", "key", key, "error", err)
			return fallback
		}
		return parsed
	}
	return fallback
}

// GetBool retrieves an environment variable as bool or returns fallback.
func GetBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			slog.Warn("invalid boolean in environment", "key", key, "error", err)
			return fallback
		}
		return parsed
	}
	return fallback
}

// GetList splits a comma separated environment variable, dropping blanks.
func GetList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
