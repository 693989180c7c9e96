package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	customerrors "github.com/taekwondodev/ledger-auth/internal/customErrors"
	"github.com/taekwondodev/ledger-auth/internal/models"
)

const uniqueViolation = "23505"

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	Healthz(ctx context.Context) error
}

type UserRepositoryImpl struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
        SELECT id, username, email, password_hash, created_at, last_login, is_active
        FROM users
        WHERE username = $1
    `

	var user models.User
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&lastLogin,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}

	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}

	return &user, nil
}

func (r *UserRepositoryImpl) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}

	return exists, nil
}

// Insert stores the user unless the username or email is taken, in which case
// it returns ErrUserAlreadyExists. The conflict check and the write are one
// statement.
func (r *UserRepositoryImpl) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
        INSERT INTO users (username, email, password_hash, created_at, is_active)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT DO NOTHING
        RETURNING id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.IsActive,
	).Scan(&user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return nil, customerrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// UpdateLastLogin never moves last_login backwards.
func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	query := `
        UPDATE users
        SET last_login = $2
        WHERE id = $1 AND (last_login IS NULL OR last_login < $2)
    `

	if _, err := r.db.ExecContext(ctx, query, userID, at); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) Healthz(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}

	return false
}
