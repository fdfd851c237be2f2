package domain

import (
	"github.com/shopspring/decimal"
)

// WithdrawalRepository tracks cumulative withdrawn amounts per account
// per UTC calendar day. The total is read and updated inside the same
// database transaction as the balance change so the daily cap holds
// under concurrent withdrawals.
type WithdrawalRepository interface {
	GetDailyTotal(accountNumber int64, date string) (decimal.Decimal, error)
	UpsertDailyTotal(accountNumber int64, date string, total decimal.Decimal) error
}

// Store is the unit of work over both repositories. WithTransaction
// runs fn against transaction-scoped repositories and commits only if
// fn returns nil; any error or panic rolls back.
type Store interface {
	Accounts() AccountRepository
	Withdrawals() WithdrawalRepository
	WithTransaction(fn func(Store) error) error
}
