package dto

import "github.com/taekwondodev/ledger-auth/internal/models"

type TransactionResponse struct {
	Success bool                 `json:"success"`
	Data    []models.Transaction `json:"data,omitempty"`
	Error   string               `json:"error,omitempty"`
}
