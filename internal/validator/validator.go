// Package validator holds the transaction rules as pure functions over
// an account snapshot. It performs no I/O; callers supply the current
// daily withdrawal total and apply the returned balances themselves.
package validator

import (
	"github.com/shopspring/decimal"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
)

var (
	maxDepositPerTransaction    = decimal.NewFromInt(1000)
	maxWithdrawalPerTransaction = decimal.NewFromInt(200)
	maxWithdrawalPerDay         = decimal.NewFromInt(400)
	withdrawalStep              = decimal.NewFromInt(5)
)

// ValidateDeposit decides whether amount may be deposited into account
// and returns the resulting balance. Deposits on a credit account in
// debt may not push the balance above zero; an exact zeroing deposit is
// allowed.
func ValidateDeposit(account *domain.Account, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, errors.NewAppError(errors.InvalidAmount, "Deposit amount must be greater than zero")
	}
	if amount.GreaterThan(maxDepositPerTransaction) {
		return decimal.Zero, errors.NewAppError(errors.InvalidAmount, "Cannot deposit more than $1000 in a single transaction.")
	}

	newBalance := account.Amount.Add(amount)
	if account.IsCredit() && account.Amount.IsNegative() && newBalance.IsPositive() {
		return decimal.Zero, errors.NewAppError(errors.InvalidAmount, "Cannot deposit more in the account than is needed to zero out the account.")
	}

	return newBalance, nil
}

// ValidateWithdrawal decides whether amount may be withdrawn from
// account given the amount already withdrawn today. On success it
// returns the new balance and the new daily total. Rules are evaluated
// in a fixed order so that the reported reason is stable when an input
// violates several of them: per-transaction cap, daily cap,
// multiple-of-5, then funds or credit limit.
func ValidateWithdrawal(account *domain.Account, amount, dailyTotal decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, decimal.Zero, errors.NewAppError(errors.InvalidAmount, "Withdrawal amount must be greater than zero")
	}
	if amount.GreaterThan(maxWithdrawalPerTransaction) {
		return decimal.Zero, decimal.Zero, errors.NewAppError(errors.InvalidAmount, "Cannot withdraw more than $200 in a single transaction.")
	}

	newDailyTotal := dailyTotal.Add(amount)
	if newDailyTotal.GreaterThan(maxWithdrawalPerDay) {
		return decimal.Zero, decimal.Zero, errors.ErrDailyLimitExceeded
	}

	if !amount.Mod(withdrawalStep).IsZero() {
		return decimal.Zero, decimal.Zero, errors.NewAppError(errors.InvalidAmount, "Can only withdraw amounts in multiples of $5.")
	}

	if account.IsCredit() {
		if amount.GreaterThan(account.Amount.Add(account.CreditLimit)) {
			return decimal.Zero, decimal.Zero, errors.ErrCreditLimitExceeded
		}
	} else if amount.GreaterThan(account.Amount) {
		return decimal.Zero, decimal.Zero, errors.ErrInsufficientFunds
	}

	return account.Amount.Sub(amount), newDailyTotal, nil
}
