package services

import (
	"context"
	"database/sql"

	"github.com/nexuscrm/datatable/internal/domain/tables"
	"github.com/nexuscrm/datatable/internal/infrastructure/persistence"
	"github.com/nexuscrm/datatable/pkg/query"
)

// TableReader executes assembled statements against registry tables.
// Implemented by persistence.TableRepository.
type TableReader interface {
	GetExecutor() persistence.Executor
	Fetch(ctx context.Context, exec persistence.Executor, q query.QueryResult, d *tables.TableDescriptor) ([]tables.Record, error)
	Count(ctx context.Context, exec persistence.Executor, q query.QueryResult) (int64, error)
	Stream(ctx context.Context, exec persistence.Executor, q query.QueryResult, d *tables.TableDescriptor, fn func(tables.Record) error) (int, error)
}

// Snapshotter runs a function inside a read-only snapshot transaction.
// Implemented by persistence.TransactionManager.
type Snapshotter interface {
	WithSnapshot(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// ExportMirror receives a copy of every finished export.
// Implemented by storage.Client.
type ExportMirror interface {
	Enabled() bool
	Upload(ctx context.Context, path string) error
}
