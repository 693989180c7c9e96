package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/taekwondodev/ledger-auth/internal/logging"
	"github.com/taekwondodev/ledger-auth/internal/models"
	"github.com/taekwondodev/ledger-auth/internal/transaction/service"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func TestGetAll(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		repo := &MockTransactionRepository{}
		defer repo.AssertExpectations(t)

		data := []models.Transaction{{ID: 1, Amount: "10.00"}, {ID: 2, Amount: "20.00"}}
		repo.On("GetAll", mock.Anything).Return(data, nil)

		res := service.NewTransactionService(repo, logging.Discard()).GetAll(context.Background())

		assert.True(t, res.Success)
		assert.Equal(t, data, res.Data)
		assert.Empty(t, res.Error)
	})

	t.Run("Store error is sanitized", func(t *testing.T) {
		t.Parallel()

		repo := &MockTransactionRepository{}
		defer repo.AssertExpectations(t)

		var buf bytes.Buffer
		logger := logging.NewWithWriter(&buf, "test", "debug")
		repo.On("GetAll", mock.Anything).Return(nil, errors.New("pq: password authentication failed for user \"ledger\""))

		res := service.NewTransactionService(repo, logger).GetAll(context.Background())

		assert.False(t, res.Success)
		assert.Nil(t, res.Data)
		assert.Equal(t, service.MsgLoadFailed, res.Error)
		assert.NotContains(t, res.Error, "password authentication")
		assert.Contains(t, buf.String(), "password authentication failed")
	})
}
