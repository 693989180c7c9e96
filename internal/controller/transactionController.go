package controller

import (
	"net/http"

	"github.com/taekwondodev/ledger-auth/internal/transaction/service"
)

type TransactionController struct {
	transactionService service.TransactionService
}

func NewTransactionController(transactionService service.TransactionService) *TransactionController {
	return &TransactionController{transactionService: transactionService}
}

func (c *TransactionController) GetAll(w http.ResponseWriter, r *http.Request) error {
	res := c.transactionService.GetAll(r.Context())
	if !res.Success {
		return respond(w, http.StatusInternalServerError, res)
	}
	return respond(w, http.StatusOK, res)
}
