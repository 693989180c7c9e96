package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taekwondodev/ledger-auth/internal/auth/password"
	"github.com/taekwondodev/ledger-auth/internal/auth/repository"
	"github.com/taekwondodev/ledger-auth/internal/config"
	customerrors "github.com/taekwondodev/ledger-auth/internal/customErrors"
	"github.com/taekwondodev/ledger-auth/internal/dto"
	"github.com/taekwondodev/ledger-auth/internal/models"
)

const (
	MsgCredentialsRequired = "Username and password are required"
	MsgInvalidCredentials  = "Invalid username or password"
	MsgAccountInactive     = "User account is inactive"
	MsgLoginSuccessful     = "Login successful"

	healthCheckTimeout = 2 * time.Second
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResponse, error)
	Register(ctx context.Context, username, email, password string) (bool, error)
	IsTokenValid(token string) bool
	HealthCheck(ctx context.Context) (*dto.HealthResponse, error)
}

type AuthServiceImpl struct {
	repo   repository.UserRepository
	hasher password.Hasher
	jwt    config.Token
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthService(repo repository.UserRepository, hasher password.Hasher, jwt config.Token, logger *slog.Logger) AuthService {
	return &AuthServiceImpl{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
		logger: logger,
		now:    time.Now,
	}
}

// Login never tells an unknown username apart from a wrong password.
// Errors are returned only for store or signing failures.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	if username == "" || password == "" {
		return &dto.LoginResponse{Success: false, Message: MsgCredentialsRequired}, nil
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, customerrors.ErrUserNotFound) {
		return nil, err
	}

	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.InfoContext(ctx, "login rejected", "reason", "invalid credentials")
		return &dto.LoginResponse{Success: false, Message: MsgInvalidCredentials}, nil
	}

	if !user.IsActive {
		s.logger.InfoContext(ctx, "login rejected", "reason", "inactive account", "user_id", user.ID)
		return &dto.LoginResponse{Success: false, Message: MsgAccountInactive}, nil
	}

	loginAt := s.now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		return nil, err
	}
	user.LastLogin = &loginAt

	token, err := s.jwt.GenerateJWT(user)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "login succeeded", "user_id", user.ID)

	return &dto.LoginResponse{
		Success: true,
		Token:   token,
		Message: MsgLoginSuccessful,
		User:    user.Info(),
	}, nil
}

// Register returns false when a field is missing or malformed, or when the
// username or email is already taken. Errors are infrastructure failures.
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (bool, error) {
	if username == "" || email == "" || password == "" {
		return false, nil
	}

	req := dto.RegisterRequest{Username: username, Email: email, Password: password}
	if err := req.Validate(); err != nil {
		s.logger.InfoContext(ctx, "registration rejected", "reason", "invalid fields")
		return false, nil
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return false, err
	}
	if exists {
		s.logger.InfoContext(ctx, "registration rejected", "reason", "already exists")
		return false, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}

	user, err := s.repo.Insert(ctx, newUser(username, email, hash, s.now()))
	if err != nil {
		if errors.Is(err, customerrors.ErrUserAlreadyExists) {
			s.logger.InfoContext(ctx, "registration rejected", "reason", "lost insert race")
			return false, nil
		}
		return false, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return true, nil
}

func (s *AuthServiceImpl) IsTokenValid(token string) bool {
	if token == "" {
		return false
	}

	_, err := s.jwt.ValidateJWT(token)
	return err == nil
}

func (s *AuthServiceImpl) HealthCheck(ctx context.Context) (*dto.HealthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := s.repo.Healthz(ctx); err != nil {
		s.logger.WarnContext(ctx, "database health check failed", "error", err)
		switch {
		case isSSLerror(err):
			return nil, customerrors.ErrDbSSLHandshakeFailed
		case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
			return nil, customerrors.ErrDbTimeout
		default:
			return nil, customerrors.ErrDbUnreacheable
		}
	}

	return &dto.HealthResponse{
		Status:   "OK",
		Database: "Connected",
	}, nil
}

func newUser(username, email, hash string, now time.Time) *models.User {
	return &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now.UTC(),
		IsActive:     true,
	}
}

func isSSLerror(err error) bool {
	return strings.Contains(err.Error(), "SSL") ||
		strings.Contains(err.Error(), "certificate") ||
		strings.Contains(err.Error(), "TLS")
}
