package service

import (
	"context"
	"log/slog"

	"github.com/taekwondodev/ledger-auth/internal/dto"
	"github.com/taekwondodev/ledger-auth/internal/transaction/repository"
)

const MsgLoadFailed = "failed to load transactions"

type TransactionService interface {
	GetAll(ctx context.Context) *dto.TransactionResponse
}

type TransactionServiceImpl struct {
	repo   repository.TransactionRepository
	logger *slog.Logger
}

func NewTransactionService(repo repository.TransactionRepository, logger *slog.Logger) TransactionService {
	return &TransactionServiceImpl{repo: repo, logger: logger}
}

// GetAll never fails: store errors are logged and reported in the response.
func (s *TransactionServiceImpl) GetAll(ctx context.Context) *dto.TransactionResponse {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load transactions", "error", err)
		return &dto.TransactionResponse{Success: false, Error: MsgLoadFailed}
	}

	return &dto.TransactionResponse{Success: true, Data: transactions}
}
