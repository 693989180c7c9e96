package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/taekwondodev/ledger-auth/internal/auth/service"
	"github.com/taekwondodev/ledger-auth/internal/dto"
)

const maxBodyBytes = 1 << 20

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginRequest
	if err := decode(w, r, &req); err != nil {
		return respond(w, http.StatusBadRequest, &dto.LoginResponse{Success: false, Message: dto.MsgInvalidRequest})
	}

	res, err := c.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	if !res.Success {
		return respond(w, http.StatusUnauthorized, res)
	}
	return respond(w, http.StatusOK, res)
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) error {
	var req dto.RegisterRequest
	if err := decode(w, r, &req); err != nil {
		return respond(w, http.StatusBadRequest, &dto.RegisterResponse{Success: false, Message: dto.MsgInvalidRequest})
	}

	ok, err := c.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	if !ok {
		return respond(w, http.StatusBadRequest, &dto.RegisterResponse{Success: false, Message: dto.MsgRegistrationRejected})
	}
	return respond(w, http.StatusOK, &dto.RegisterResponse{Success: true, Message: dto.MsgRegistrationSuccess})
}

// Validate accepts the token either as a bare JSON string or as {"token": "..."}.
// A body that is neither is simply an invalid token.
func (c *AuthController) Validate(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return respond(w, http.StatusOK, &dto.ValidateTokenResponse{IsValid: false})
	}

	token := tokenFromBody(body)
	return respond(w, http.StatusOK, &dto.ValidateTokenResponse{IsValid: c.authService.IsTokenValid(token)})
}

func (c *AuthController) HealthCheck(w http.ResponseWriter, r *http.Request) error {
	res, err := c.authService.HealthCheck(r.Context())
	if err != nil {
		return err
	}

	return respond(w, http.StatusOK, res)
}

func tokenFromBody(body []byte) string {
	body = bytes.TrimSpace(body)

	var token string
	if err := json.Unmarshal(body, &token); err == nil {
		return token
	}

	var req dto.ValidateTokenRequest
	if err := json.Unmarshal(body, &req); err == nil {
		return req.Token
	}
	return ""
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func respond(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}
