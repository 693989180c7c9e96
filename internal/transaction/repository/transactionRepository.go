package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taekwondodev/ledger-auth/internal/models"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	GetAll(ctx context.Context) ([]models.Transaction, error)
}

type TransactionRepositoryImpl struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &TransactionRepositoryImpl{db: db}
}

func (r *TransactionRepositoryImpl) GetAll(ctx context.Context) ([]models.Transaction, error) {
	query := `SELECT id, amount, routine_period_type, done_at, created_at
		FROM transactions
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.RoutinePeriodType, &t.DoneAt, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

type GormTransactionRepository struct {
	db *gorm.DB
}

func NewGormTransactionRepository(db *gorm.DB) TransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	return transactions, nil
}
