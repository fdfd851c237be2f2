package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"atm-service/internal/errors"
	"atm-service/internal/service"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
}

func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

type AmountRequest struct {
	Amount json.Number `json:"amount"` // accepts both numbers and numeric strings
}

type TransactionResponse struct {
	Message    string          `json:"message"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountNumber := mux.Vars(r)["account_number"]

	amount, err := decodeAmount(r)
	if err != nil {
		writeError(w, err)
		return
	}

	newBalance, err := h.transactionService.Deposit(accountNumber, amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TransactionResponse{
		Message:    "Deposit successful",
		NewBalance: newBalance,
	})
}

func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	accountNumber := mux.Vars(r)["account_number"]

	amount, err := decodeAmount(r)
	if err != nil {
		writeError(w, err)
		return
	}

	newBalance, err := h.transactionService.Withdraw(accountNumber, amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TransactionResponse{
		Message:    "Withdrawal successful",
		NewBalance: newBalance,
	})
}

func decodeAmount(r *http.Request) (decimal.Decimal, error) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return decimal.Zero, errors.NewAppError(errors.InvalidInput, "Invalid request body").WithDetails(err.Error())
	}

	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		return decimal.Zero, errors.NewAppError(errors.InvalidAmount, "Invalid amount format")
	}

	return amount, nil
}
