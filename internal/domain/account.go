package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType distinguishes debit accounts from credit accounts.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCredit   AccountType = "credit"
)

type Account struct {
	AccountNumber int64           `json:"account_number"`
	Type          AccountType     `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IsCredit reports whether the account may carry a negative balance,
// bounded below by -CreditLimit.
func (a *Account) IsCredit() bool {
	return a.Type == AccountTypeCredit
}

type AccountRepository interface {
	GetAllAccounts() ([]*Account, error)
	GetAccount(accountNumber int64) (*Account, error)
	GetAccountForUpdate(accountNumber int64) (*Account, error)
	UpdateAccountBalance(accountNumber int64, newBalance decimal.Decimal) error
}
