package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/nexuscrm/datatable/pkg/errors"
)

// TransactionManager runs reads that must observe a single snapshot
type TransactionManager struct {
	db     *sql.DB
	driver string
}

// NewTransactionManager creates a new TransactionManager for the given driver
func NewTransactionManager(db *sql.DB, driver string) *TransactionManager {
	return &TransactionManager{db: db, driver: driver}
}

// WithTransaction executes a function within a database transaction.
// The transaction is automatically rolled back if the function returns an error or panics.
// The transaction is committed if the function returns nil.
func (tm *TransactionManager) WithTransaction(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := tm.db.BeginTx(ctx, opts)
	if err != nil {
		return errors.NewDatabaseError("begin transaction", err)
	}

	// Ensure rollback on panic
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed: %w (rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("commit transaction", err)
	}

	return nil
}

// WithSnapshot runs fn in a transaction that observes a single consistent
// snapshot, at the strongest level the driver offers.
func (tm *TransactionManager) WithSnapshot(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return tm.WithTransaction(ctx, SnapshotOptions(tm.driver), fn)
}

// SnapshotOptions returns the transaction options used for snapshot reads.
// A deferred SQLite transaction already reads from one snapshot. Its driver
// rejects REPEATABLE READ, and a ReadOnly transaction toggles query_only,
// which fails on connections opened without a _pragma parameter.
func SnapshotOptions(driver string) *sql.TxOptions {
	if driver == constants.DriverSQLite {
		return &sql.TxOptions{Isolation: sql.LevelDefault}
	}
	return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
}
