package config

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

type Postgres struct {
	Db        *sql.DB
	driver    string
	dbConnStr string
	logger    *slog.Logger
}

// NewPostgres prepares a pool for either the lib/pq ("postgres") or the
// pgx stdlib ("pgx") driver. Nothing is dialed until InitDB.
func NewPostgres(driver, connStr string, logger *slog.Logger) (*Postgres, error) {
	if driver != DriverPostgres && driver != DriverPgx {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	if strings.TrimSpace(connStr) == "" {
		return nil, fmt.Errorf("DB connection string not defined")
	}

	return &Postgres{
		driver:    driver,
		dbConnStr: connStr,
		logger:    logger,
	}, nil
}

func (p *Postgres) InitDB(ctx context.Context) error {
	var err error

	p.Db, err = sql.Open(p.driver, p.dbConnStr)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	p.Db.SetMaxOpenConns(25)
	p.Db.SetMaxIdleConns(10)
	p.Db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err = p.Db.PingContext(pingCtx); err != nil {
		if strings.Contains(err.Error(), "certificate") {
			return fmt.Errorf("SSL verification failed: %w", err)
		}
		return fmt.Errorf("ping database: %w", err)
	}

	p.logger.Info("connection to database established", "driver", p.driver)
	return nil
}

func (p *Postgres) CloseDB() {
	if p.Db == nil {
		return
	}

	if err := p.Db.Close(); err != nil {
		p.logger.Warn("closing database", "error", err)
		return
	}
	p.logger.Info("connection to database closed")
}
