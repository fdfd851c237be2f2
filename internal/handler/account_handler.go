package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
	"atm-service/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

type AccountResponse struct {
	AccountNumber int64           `json:"account_number"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
}

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

func toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: account.AccountNumber,
		Type:          string(account.Type),
		Amount:        account.Amount,
		CreditLimit:   account.CreditLimit,
	}
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.ListAccounts()
	if err != nil {
		writeError(w, err)
		return
	}

	if len(accounts) == 0 {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Message: "No accounts found",
			Code:    string(errors.AccountNotFound),
		})
		return
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, toAccountResponse(account))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	accountNumber := vars["account_number"]

	account, err := h.accountService.GetAccount(accountNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	accountNumber := vars["account_number"]

	balance, err := h.accountService.GetBalance(accountNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{Balance: balance})
}
