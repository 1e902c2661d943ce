package persistence

import (
	"database/sql"
	"fmt"

	"github.com/nexuscrm/datatable/internal/domain/tables"
	"github.com/nexuscrm/datatable/pkg/constants"
)

// nullableDest returns a scan destination matching the column type
func nullableDest(col tables.Column) interface{} {
	switch col.Type {
	case constants.ColumnTypeInt:
		return &sql.NullInt64{}
	case constants.ColumnTypeFloat:
		return &sql.NullFloat64{}
	default:
		return &sql.NullString{}
	}
}

// resolve unwraps a scanned destination, substituting the column default for NULL
func resolve(col tables.Column, dest interface{}) interface{} {
	switch v := dest.(type) {
	case *sql.NullInt64:
		if v.Valid {
			return v.Int64
		}
	case *sql.NullFloat64:
		if v.Valid {
			return v.Float64
		}
	case *sql.NullString:
		if v.Valid {
			return v.String
		}
	}
	return col.Default()
}

// ScanRecord scans the current row into a record shaped by columns.
// The row must select exactly those columns, in that order.
func ScanRecord(rows *sql.Rows, columns []tables.Column) (tables.Record, error) {
	dests := make([]interface{}, len(columns))
	for i, col := range columns {
		dests[i] = nullableDest(col)
	}

	if err := rows.Scan(dests...); err != nil {
		return tables.Record{}, fmt.Errorf("scan row: %w", err)
	}

	values := make([]interface{}, len(columns))
	for i, col := range columns {
		values[i] = resolve(col, dests[i])
	}
	return tables.Record{Columns: columns, Values: values}, nil
}
