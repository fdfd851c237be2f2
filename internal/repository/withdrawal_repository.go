package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
)

type withdrawalRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewWithdrawalRepository(db SQLExecutor, logger *slog.Logger) domain.WithdrawalRepository {
	return &withdrawalRepository{
		db:     db,
		logger: logger,
	}
}

// GetDailyTotal returns the cumulative amount withdrawn from the
// account on the given UTC date. An absent row means nothing has been
// withdrawn today. Callers hold the account row lock, so the total
// cannot move underneath a running withdrawal.
func (r *withdrawalRepository) GetDailyTotal(accountNumber int64, date string) (decimal.Decimal, error) {
	query := `
		SELECT total FROM daily_withdrawals
		WHERE account_number = $1 AND withdrawal_date = $2
	`

	var totalStr string
	err := r.db.QueryRow(query, accountNumber, date).Scan(&totalStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, nil
		}
		r.logger.Error("Failed to get daily withdrawal total", "account_number", accountNumber, "date", date, "error", err)
		return decimal.Zero, errors.NewAppError(errors.InternalError, "failed to get daily withdrawal total").WithDetails(err.Error())
	}

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return decimal.Zero, errors.NewAppError(errors.InternalError, "failed to parse daily withdrawal total").WithDetails(err.Error())
	}

	return total, nil
}

func (r *withdrawalRepository) UpsertDailyTotal(accountNumber int64, date string, total decimal.Decimal) error {
	query := `
		INSERT INTO daily_withdrawals (account_number, withdrawal_date, total, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_number, withdrawal_date)
		DO UPDATE SET total = EXCLUDED.total, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(query, accountNumber, date, total.String(), time.Now())
	if err != nil {
		r.logger.Error("Failed to upsert daily withdrawal total", "account_number", accountNumber, "date", date, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to upsert daily withdrawal total").WithDetails(err.Error())
	}

	r.logger.Info("Daily withdrawal total updated", "account_number", accountNumber, "date", date, "total", total)
	return nil
}
