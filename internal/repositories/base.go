package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "fleetops/internal/config"
	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn holds the optional explicit handles shared by every repository.
// Tx wins over DB; DB falls back to the process-wide connection.
type conn struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (c conn) db() *sql.DB {
	if c.DB != nil {
		return c.DB
	}
	return intconfig.DB
}

func (c conn) q() (DBTX, error) {
	if c.Tx != nil {
		return c.Tx, nil
	}
	if db := c.db(); db != nil {
		return db, nil
	}
	return nil, domain.InternalError{Msg: "database not connected"}
}

// BeginTx opens a transaction on the repository's database.
func BeginTx(ctx context.Context, db *sql.DB) (*sql.Tx, error) {
	if db == nil {
		db = intconfig.DB
	}
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}
	return db.BeginTx(ctx, nil)
}

func notFound(err error, resource string, key any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Key: key, Err: err}
	}
	return fmt.Errorf("load %s %v: %w", resource, key, err)
}

func conflictOr(err error, resource, msg string) error {
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: resource, Msg: msg, Err: err}
	}
	return err
}

func affectedOrNotFound(res sql.Result, resource string, key any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource, Key: key}
	}
	return nil
}

func optionalID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func optionalTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
