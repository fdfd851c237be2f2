package service

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
)

// fakeStore is an in-memory domain.Store. WithTransaction snapshots
// state before running fn and restores it when fn fails, mirroring the
// rollback the real store gets from Postgres.
type fakeStore struct {
	accounts    map[int64]*domain.Account
	dailyTotals map[string]decimal.Decimal
}

func newFakeStore(accounts ...*domain.Account) *fakeStore {
	s := &fakeStore{
		accounts:    make(map[int64]*domain.Account),
		dailyTotals: make(map[string]decimal.Decimal),
	}
	for _, a := range accounts {
		cp := *a
		s.accounts[a.AccountNumber] = &cp
	}
	return s
}

func (s *fakeStore) Accounts() domain.AccountRepository       { return &fakeAccountRepo{s} }
func (s *fakeStore) Withdrawals() domain.WithdrawalRepository { return &fakeWithdrawalRepo{s} }

func (s *fakeStore) WithTransaction(fn func(domain.Store) error) error {
	accountsSnap := make(map[int64]*domain.Account, len(s.accounts))
	for k, v := range s.accounts {
		cp := *v
		accountsSnap[k] = &cp
	}
	totalsSnap := make(map[string]decimal.Decimal, len(s.dailyTotals))
	for k, v := range s.dailyTotals {
		totalsSnap[k] = v
	}

	if err := fn(s); err != nil {
		s.accounts = accountsSnap
		s.dailyTotals = totalsSnap
		return err
	}
	return nil
}

func (s *fakeStore) balance(t *testing.T, accountNumber int64) decimal.Decimal {
	t.Helper()
	account, ok := s.accounts[accountNumber]
	require.True(t, ok, "account %d missing", accountNumber)
	return account.Amount
}

type fakeAccountRepo struct{ store *fakeStore }

func (r *fakeAccountRepo) GetAllAccounts() ([]*domain.Account, error) {
	out := make([]*domain.Account, 0, len(r.store.accounts))
	for _, a := range r.store.accounts {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out, nil
}

func (r *fakeAccountRepo) GetAccount(accountNumber int64) (*domain.Account, error) {
	a, ok := r.store.accounts[accountNumber]
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) GetAccountForUpdate(accountNumber int64) (*domain.Account, error) {
	return r.GetAccount(accountNumber)
}

func (r *fakeAccountRepo) UpdateAccountBalance(accountNumber int64, newBalance decimal.Decimal) error {
	a, ok := r.store.accounts[accountNumber]
	if !ok {
		return errors.ErrAccountNotFound
	}
	a.Amount = newBalance
	return nil
}

type fakeWithdrawalRepo struct{ store *fakeStore }

func dailyKey(accountNumber int64, date string) string {
	return fmt.Sprintf("%d|%s", accountNumber, date)
}

func (r *fakeWithdrawalRepo) GetDailyTotal(accountNumber int64, date string) (decimal.Decimal, error) {
	if total, ok := r.store.dailyTotals[dailyKey(accountNumber, date)]; ok {
		return total, nil
	}
	return decimal.Zero, nil
}

func (r *fakeWithdrawalRepo) UpsertDailyTotal(accountNumber int64, date string, total decimal.Decimal) error {
	r.store.dailyTotals[dailyKey(accountNumber, date)] = total
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func checkingAccount(number, balance int64) *domain.Account {
	return &domain.Account{
		AccountNumber: number,
		Type:          domain.AccountTypeChecking,
		Amount:        decimal.NewFromInt(balance),
	}
}

func creditAccount(number, balance, limit int64) *domain.Account {
	return &domain.Account{
		AccountNumber: number,
		Type:          domain.AccountTypeCredit,
		Amount:        decimal.NewFromInt(balance),
		CreditLimit:   decimal.NewFromInt(limit),
	}
}

func assertAppError(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected an AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func TestAccountService(t *testing.T) {
	store := newFakeStore(checkingAccount(1001, 100), creditAccount(2001, -50, 500))
	svc := NewAccountService(store, testLogger())

	t.Run("lists accounts in order", func(t *testing.T) {
		accounts, err := svc.ListAccounts()
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Equal(t, int64(1001), accounts[0].AccountNumber)
		assert.Equal(t, int64(2001), accounts[1].AccountNumber)
	})

	t.Run("gets one account", func(t *testing.T) {
		account, err := svc.GetAccount("2001")
		require.NoError(t, err)
		assert.Equal(t, domain.AccountTypeCredit, account.Type)
		assert.True(t, account.Amount.Equal(decimal.NewFromInt(-50)))
	})

	t.Run("gets a balance", func(t *testing.T) {
		balance, err := svc.GetBalance("1001")
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.GetAccount("9999")
		assertAppError(t, err, errors.AccountNotFound)
	})

	t.Run("malformed account number", func(t *testing.T) {
		_, err := svc.GetAccount("not-a-number")
		assertAppError(t, err, errors.InvalidInput)
	})
}

func TestTransactionServiceDeposit(t *testing.T) {
	t.Run("applies an accepted deposit", func(t *testing.T) {
		store := newFakeStore(checkingAccount(1001, 100))
		svc := NewTransactionService(store, testLogger())

		newBalance, err := svc.Deposit("1001", decimal.NewFromInt(250))
		require.NoError(t, err)
		assert.True(t, newBalance.Equal(decimal.NewFromInt(350)))
		assert.True(t, store.balance(t, 1001).Equal(decimal.NewFromInt(350)))
	})

	t.Run("rejected deposit leaves the balance untouched", func(t *testing.T) {
		store := newFakeStore(creditAccount(2001, -50, 500))
		svc := NewTransactionService(store, testLogger())

		_, err := svc.Deposit("2001", decimal.NewFromInt(80))
		assertAppError(t, err, errors.InvalidAmount)
		assert.True(t, store.balance(t, 2001).Equal(decimal.NewFromInt(-50)))
	})

	t.Run("unknown account", func(t *testing.T) {
		store := newFakeStore()
		svc := NewTransactionService(store, testLogger())

		_, err := svc.Deposit("9999", decimal.NewFromInt(10))
		assertAppError(t, err, errors.AccountNotFound)
	})
}

func TestTransactionServiceWithdraw(t *testing.T) {
	t.Run("applies an accepted withdrawal and records the daily total", func(t *testing.T) {
		store := newFakeStore(checkingAccount(1001, 100))
		svc := NewTransactionService(store, testLogger())

		newBalance, err := svc.Withdraw("1001", decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.True(t, newBalance.Equal(decimal.NewFromInt(50)))

		total, err := store.Withdrawals().GetDailyTotal(1001, svc.withdrawalDate())
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(50)))
	})

	t.Run("rejected withdrawal leaves balance and daily total untouched", func(t *testing.T) {
		store := newFakeStore(checkingAccount(1001, 100))
		svc := NewTransactionService(store, testLogger())

		_, err := svc.Withdraw("1001", decimal.NewFromInt(205))
		assertAppError(t, err, errors.InvalidAmount)
		assert.True(t, store.balance(t, 1001).Equal(decimal.NewFromInt(100)))

		total, err := store.Withdrawals().GetDailyTotal(1001, svc.withdrawalDate())
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("daily cap accumulates across withdrawals", func(t *testing.T) {
		store := newFakeStore(checkingAccount(1001, 1000))
		svc := NewTransactionService(store, testLogger())

		for i := 0; i < 2; i++ {
			_, err := svc.Withdraw("1001", decimal.NewFromInt(200))
			require.NoError(t, err)
		}

		// 400 already withdrawn today.
		_, err := svc.Withdraw("1001", decimal.NewFromInt(5))
		assertAppError(t, err, errors.DailyLimitExceeded)
		assert.True(t, store.balance(t, 1001).Equal(decimal.NewFromInt(600)))
	})

	t.Run("daily cap resets on the next day", func(t *testing.T) {
		store := newFakeStore(checkingAccount(1001, 1000))
		svc := NewTransactionService(store, testLogger())

		day := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
		svc.now = func() time.Time { return day }

		for i := 0; i < 2; i++ {
			_, err := svc.Withdraw("1001", decimal.NewFromInt(200))
			require.NoError(t, err)
		}
		_, err := svc.Withdraw("1001", decimal.NewFromInt(5))
		assertAppError(t, err, errors.DailyLimitExceeded)

		svc.now = func() time.Time { return day.Add(2 * time.Hour) } // past UTC midnight
		newBalance, err := svc.Withdraw("1001", decimal.NewFromInt(200))
		require.NoError(t, err)
		assert.True(t, newBalance.Equal(decimal.NewFromInt(400)))
	})

	t.Run("daily totals are tracked per account", func(t *testing.T) {
		store := newFakeStore(checkingAccount(1001, 1000), checkingAccount(1002, 1000))
		svc := NewTransactionService(store, testLogger())

		for i := 0; i < 2; i++ {
			_, err := svc.Withdraw("1001", decimal.NewFromInt(200))
			require.NoError(t, err)
		}

		// The other account still has its full daily allowance.
		newBalance, err := svc.Withdraw("1002", decimal.NewFromInt(200))
		require.NoError(t, err)
		assert.True(t, newBalance.Equal(decimal.NewFromInt(800)))
	})

	t.Run("credit account may draw into its limit", func(t *testing.T) {
		store := newFakeStore(creditAccount(2001, -50, 500))
		svc := NewTransactionService(store, testLogger())

		newBalance, err := svc.Withdraw("2001", decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.True(t, newBalance.Equal(decimal.NewFromInt(-150)))
	})

	t.Run("unknown account", func(t *testing.T) {
		store := newFakeStore()
		svc := NewTransactionService(store, testLogger())

		_, err := svc.Withdraw("9999", decimal.NewFromInt(50))
		assertAppError(t, err, errors.AccountNotFound)
	})
}
