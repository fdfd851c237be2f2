package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
)

type accountRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewAccountRepository(db SQLExecutor, logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) GetAllAccounts() ([]*domain.Account, error) {
	query := `
		SELECT account_number, type, amount, credit_limit, created_at, updated_at
		FROM accounts ORDER BY account_number
	`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to list accounts", "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to list accounts").WithDetails(err.Error())
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccountRow(rows.Scan)
		if err != nil {
			r.logger.Error("Failed to scan account row", "error", err)
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to read account rows").WithDetails(err.Error())
	}

	return accounts, nil
}

func (r *accountRepository) GetAccount(accountNumber int64) (*domain.Account, error) {
	query := `
		SELECT account_number, type, amount, credit_limit, created_at, updated_at
		FROM accounts WHERE account_number = $1
	`

	return r.scanAccount(query, accountNumber)
}

func (r *accountRepository) GetAccountForUpdate(accountNumber int64) (*domain.Account, error) {
	query := `
		SELECT account_number, type, amount, credit_limit, created_at, updated_at
		FROM accounts WHERE account_number = $1 FOR UPDATE
	`

	return r.scanAccount(query, accountNumber)
}

func (r *accountRepository) scanAccount(query string, accountNumber int64) (*domain.Account, error) {
	row := r.db.QueryRow(query, accountNumber)

	account, err := scanAccountRow(row.Scan)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.AccountNotFound {
			r.logger.Warn("Account not found", "account_number", accountNumber)
			return nil, err
		}
		r.logger.Error("Failed to get account", "account_number", accountNumber, "error", err)
		return nil, err
	}

	return account, nil
}

// scanAccountRow decodes one accounts row. Balances are stored as
// NUMERIC and scanned through strings to keep decimal exactness.
func scanAccountRow(scan func(dest ...interface{}) error) (*domain.Account, error) {
	var account domain.Account
	var amountStr, creditLimitStr string

	err := scan(
		&account.AccountNumber,
		&account.Type,
		&amountStr,
		&creditLimitStr,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrAccountNotFound
		}
		return nil, errors.NewAppError(errors.InternalError, "failed to get account").WithDetails(err.Error())
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to parse balance").WithDetails(err.Error())
	}
	account.Amount = amount

	creditLimit, err := decimal.NewFromString(creditLimitStr)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to parse credit limit").WithDetails(err.Error())
	}
	account.CreditLimit = creditLimit

	return &account, nil
}

func (r *accountRepository) UpdateAccountBalance(accountNumber int64, newBalance decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET amount = $1, updated_at = $2
		WHERE account_number = $3
	`

	result, err := r.db.Exec(query, newBalance.String(), time.Now(), accountNumber)
	if err != nil {
		r.logger.Error("Failed to update account balance", "account_number", accountNumber, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to update account balance").WithDetails(err.Error())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to get rows affected").WithDetails(err.Error())
	}

	if rowsAffected == 0 {
		r.logger.Warn("No account found to update", "account_number", accountNumber)
		return errors.ErrAccountNotFound
	}

	r.logger.Info("Account balance updated", "account_number", accountNumber, "new_balance", newBalance)
	return nil
}
