package tables

import (
	"strconv"

	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/nexuscrm/datatable/pkg/errors"
)

// Column represents a single column of a registry table
type Column struct {
	Name string               `json:"name"`
	Type constants.ColumnType `json:"type"`
}

// Default is the value substituted when the column is NULL
func (c Column) Default() interface{} {
	switch c.Type {
	case constants.ColumnTypeInt:
		return constants.DefaultIntValue
	case constants.ColumnTypeFloat:
		return constants.DefaultFloatValue
	default:
		return constants.DefaultTextValue
	}
}

// TableDescriptor describes one table the UI may query.
// Descriptors are built once and never mutated afterwards.
type TableDescriptor struct {
	ShortName    string            `json:"short_name"`
	BackendTable string            `json:"backend_table"`
	Columns      []Column          `json:"columns"`
	IndexMap     map[string]string `json:"index_map"`
}

// NewTableDescriptor builds a descriptor whose index map keys are "0".."n-1"
// in column order.
func NewTableDescriptor(shortName, backendTable string, columns ...Column) *TableDescriptor {
	indexMap := make(map[string]string, len(columns))
	for i, col := range columns {
		indexMap[strconv.Itoa(i)] = col.Name
	}
	return &TableDescriptor{
		ShortName:    shortName,
		BackendTable: backendTable,
		Columns:      columns,
		IndexMap:     indexMap,
	}
}

// ColumnNames returns the column names in declaration order. The same list
// is used for SELECT, search predicates and the CSV header.
func (d *TableDescriptor) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// SortColumn resolves a UI column index ("0", "1", ...) to a column name
func (d *TableDescriptor) SortColumn(index string) (string, error) {
	name, ok := d.IndexMap[index]
	if !ok {
		return "", errors.NewQueryError(errors.ReasonUnknownSortColumn,
			"unknown sort column index '"+index+"' for table '"+d.ShortName+"'")
	}
	return name, nil
}
