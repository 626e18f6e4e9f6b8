package services

import (
	"context"
	"database/sql"

	intconfig "fleetops/internal/config"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/finance"
	"fleetops/internal/money"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"

	"github.com/shopspring/decimal"
)

func dbOr(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// withTx runs fn in a transaction, committing on success.
func withTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	db = dbOr(db)
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return domain.InternalError{Msg: "begin transaction", Err: err}
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Msg: "commit transaction", Err: err}
	}
	return nil
}

// loadSnapshot reads trips, payments, fuel and spare entries inside one
// read-only transaction so a report never sees a payment without its trip.
func loadSnapshot(ctx context.Context, db *sql.DB) (finance.ReportInput, error) {
	var in finance.ReportInput
	err := withTx(ctx, db, &sql.TxOptions{ReadOnly: true}, func(tx *sql.Tx) error {
		var err error
		if in.Trips, err = (repositories.TripRepository{}).WithTx(tx).List(ctx, models.TripFilter{}); err != nil {
			return err
		}
		if in.Payments, err = (repositories.PaymentRepository{}).WithTx(tx).ListAll(ctx); err != nil {
			return err
		}
		if in.Fuel, err = (repositories.FuelRepository{}).WithTx(tx).List(ctx, ""); err != nil {
			return err
		}
		if in.Spares, err = (repositories.SparePartRepository{}).WithTx(tx).List(ctx, ""); err != nil {
			return err
		}
		return nil
	})
	return in, err
}

// logIssues reports aggregation problems without failing the request.
func logIssues(requestID, module string, issues []error) {
	for _, issue := range issues {
		utils.LogEvent(requestID, module, "data_issue", issue.Error())
	}
}

func requireNonNegative(field string, m money.Money) error {
	if m.IsNegative() {
		return domain.ValidationError{Field: field, Msg: "must not be negative"}
	}
	return nil
}

func requireNonNegativeRate(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return domain.ValidationError{Field: field, Msg: "must not be negative"}
	}
	return nil
}

func requirePositive(field string, m money.Money) error {
	if m.IsNegative() || m.IsZero() {
		return domain.ValidationError{Field: field, Msg: "must be greater than zero"}
	}
	return nil
}

func requireText(field, v string) error {
	if v == "" {
		return domain.ValidationError{Field: field, Msg: "is required"}
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
