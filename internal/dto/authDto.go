package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/taekwondodev/ledger-auth/internal/models"
)

const (
	MsgInvalidRequest       = "Invalid request"
	MsgRegistrationSuccess  = "Registration successful. You can now login."
	MsgRegistrationRejected = "Registration failed. Username or email may already exist."
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// Validate checks presence, length and email shape.
func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

type LoginResponse struct {
	Success bool             `json:"success"`
	Token   string           `json:"token,omitempty"`
	Message string           `json:"message,omitempty"`
	User    *models.UserInfo `json:"user,omitempty"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ValidateTokenRequest struct {
	Token string `json:"token"`
}

type ValidateTokenResponse struct {
	IsValid bool `json:"isValid"`
}
