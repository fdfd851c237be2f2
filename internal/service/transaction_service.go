package service

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"atm-service/internal/domain"
	"atm-service/internal/validator"
)

// TransactionService applies deposits and withdrawals. Each operation
// runs in a single database transaction: the account row is locked,
// the rules are re-checked against the locked snapshot, and the balance
// (plus, for withdrawals, the daily total) is written before commit.
type TransactionService struct {
	store  domain.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewTransactionService(store domain.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TransactionService) Deposit(accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	s.logger.Info("Processing deposit", "account_number", accountNumber, "amount", amount)

	number, err := parseAccountNumber(accountNumber)
	if err != nil {
		return decimal.Zero, err
	}

	var newBalance decimal.Decimal
	err = s.store.WithTransaction(func(store domain.Store) error {
		account, err := store.Accounts().GetAccountForUpdate(number)
		if err != nil {
			return err
		}

		newBalance, err = validator.ValidateDeposit(account, amount)
		if err != nil {
			return err
		}

		return store.Accounts().UpdateAccountBalance(number, newBalance)
	})

	if err != nil {
		s.logger.Warn("Deposit rejected", "account_number", number, "amount", amount, "error", err)
		return decimal.Zero, err
	}

	s.logger.Info("Deposit completed", "account_number", number, "new_balance", newBalance)
	return newBalance, nil
}

func (s *TransactionService) Withdraw(accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	s.logger.Info("Processing withdrawal", "account_number", accountNumber, "amount", amount)

	number, err := parseAccountNumber(accountNumber)
	if err != nil {
		return decimal.Zero, err
	}

	date := s.withdrawalDate()

	var newBalance decimal.Decimal
	err = s.store.WithTransaction(func(store domain.Store) error {
		// Lock the account row first; it serializes concurrent
		// withdrawals from the same account, so the daily total read
		// below stays valid until commit.
		account, err := store.Accounts().GetAccountForUpdate(number)
		if err != nil {
			return err
		}

		dailyTotal, err := store.Withdrawals().GetDailyTotal(number, date)
		if err != nil {
			return err
		}

		balance, newDailyTotal, err := validator.ValidateWithdrawal(account, amount, dailyTotal)
		if err != nil {
			return err
		}

		if err := store.Accounts().UpdateAccountBalance(number, balance); err != nil {
			return err
		}

		if err := store.Withdrawals().UpsertDailyTotal(number, date, newDailyTotal); err != nil {
			return err
		}

		newBalance = balance
		return nil
	})

	if err != nil {
		s.logger.Warn("Withdrawal rejected", "account_number", number, "amount", amount, "error", err)
		return decimal.Zero, err
	}

	s.logger.Info("Withdrawal completed", "account_number", number, "new_balance", newBalance)
	return newBalance, nil
}

// withdrawalDate is the UTC calendar day the daily cap is scoped to.
func (s *TransactionService) withdrawalDate() string {
	return s.now().UTC().Format("2006-01-02")
}
