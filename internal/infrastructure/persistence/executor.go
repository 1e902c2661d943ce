package persistence

import (
	"context"
	"database/sql"
)

// Executor is satisfied by both *sql.DB and *sql.Tx so that reads can run
// inside or outside a transaction.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
