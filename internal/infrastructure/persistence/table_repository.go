package persistence

import (
	"context"
	"database/sql"

	"github.com/nexuscrm/datatable/internal/domain/tables"
	"github.com/nexuscrm/datatable/pkg/errors"
	"github.com/nexuscrm/datatable/pkg/query"
)

// TableRepository runs the assembled page, count and export statements
// against the registry tables and decodes their rows.
type TableRepository struct {
	db *sql.DB
}

// NewTableRepository creates a new TableRepository
func NewTableRepository(db *sql.DB) *TableRepository {
	return &TableRepository{db: db}
}

// GetExecutor returns the DB connection for reads outside a transaction
func (r *TableRepository) GetExecutor() Executor {
	return r.db
}

// Fetch executes a data query and decodes every row. NULL columns are
// replaced by the column default and never fail the page.
func (r *TableRepository) Fetch(ctx context.Context, exec Executor, q query.QueryResult, d *tables.TableDescriptor) ([]tables.Record, error) {
	records := make([]tables.Record, 0)
	_, err := r.Stream(ctx, exec, q, d, func(rec tables.Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count executes a count(*) query
func (r *TableRepository) Count(ctx context.Context, exec Executor, q query.QueryResult) (int64, error) {
	var n int64
	if err := exec.QueryRowContext(ctx, q.SQL, q.Params...).Scan(&n); err != nil {
		return 0, errors.NewDatabaseError("count", err)
	}
	return n, nil
}

// Stream executes a data query and hands each decoded row to fn without
// buffering the result set. An error returned by fn stops the iteration
// and is returned as is. Returns the number of rows handed to fn.
func (r *TableRepository) Stream(ctx context.Context, exec Executor, q query.QueryResult, d *tables.TableDescriptor, fn func(tables.Record) error) (int, error) {
	rows, err := exec.QueryContext(ctx, q.SQL, q.Params...)
	if err != nil {
		return 0, errors.NewDatabaseError("query", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		rec, err := ScanRecord(rows, d.Columns)
		if err != nil {
			return n, errors.NewDatabaseError("decode", err)
		}
		if err := fn(rec); err != nil {
			return n, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, errors.NewDatabaseError("query", err)
	}
	return n, nil
}
