package grpc

import (
	"context"

	"github.com/taekwondodev/ledger-auth/internal/auth/service"
	"github.com/taekwondodev/ledger-auth/internal/dto"
)

type Server struct {
	authService service.AuthService
}

func NewServer(authService service.AuthService) *Server {
	return &Server{authService: authService}
}

func (s *Server) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.authService.Login(ctx, req.Username, req.Password)
}

func (s *Server) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	ok, err := s.authService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return &dto.RegisterResponse{Success: false, Message: dto.MsgRegistrationRejected}, nil
	}
	return &dto.RegisterResponse{Success: true, Message: dto.MsgRegistrationSuccess}, nil
}

func (s *Server) Validate(ctx context.Context, req *dto.ValidateTokenRequest) (*dto.ValidateTokenResponse, error) {
	return &dto.ValidateTokenResponse{IsValid: s.authService.IsTokenValid(req.Token)}, nil
}
