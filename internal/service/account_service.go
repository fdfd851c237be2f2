package service

import (
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
)

type AccountService struct {
	store  domain.Store
	logger *slog.Logger
}

func NewAccountService(store domain.Store, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		logger: logger,
	}
}

func (s *AccountService) ListAccounts() ([]*domain.Account, error) {
	s.logger.Info("Listing accounts")

	return s.store.Accounts().GetAllAccounts()
}

func (s *AccountService) GetAccount(accountNumber string) (*domain.Account, error) {
	s.logger.Info("Getting account", "account_number", accountNumber)

	number, err := parseAccountNumber(accountNumber)
	if err != nil {
		return nil, err
	}

	return s.store.Accounts().GetAccount(number)
}

func (s *AccountService) GetBalance(accountNumber string) (decimal.Decimal, error) {
	s.logger.Info("Getting balance", "account_number", accountNumber)

	account, err := s.GetAccount(accountNumber)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Amount, nil
}

func parseAccountNumber(accountNumber string) (int64, error) {
	number, err := strconv.ParseInt(accountNumber, 10, 64)
	if err != nil || number <= 0 {
		return 0, errors.ErrInvalidAccountNumber
	}
	return number, nil
}
