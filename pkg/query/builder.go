package query

import (
	"fmt"
	"strings"

	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/nexuscrm/datatable/pkg/errors"
)

// QueryType represents the type of SQL query
type QueryType string

const (
	QueryTypeSelect QueryType = "SELECT"
	QueryTypeCount  QueryType = "COUNT"
)

// QueryResult represents the built SQL query and parameters
type QueryResult struct {
	SQL    string
	Params []interface{}
}

// Builder is a fluent SELECT builder over a single registry table
type Builder struct {
	dialect      Dialect
	queryType    QueryType
	table        string
	fields       []string
	whereClauses []string
	params       []interface{}
	orderBy      string
	limit        *uint64
	offset       *uint64
}

// From creates a new SELECT query builder
func From(d Dialect, table string) *Builder {
	return &Builder{
		dialect:      d,
		queryType:    QueryTypeSelect,
		table:        table,
		fields:       make([]string, 0),
		whereClauses: make([]string, 0),
		params:       make([]interface{}, 0),
	}
}

// CountFrom creates a new SELECT count(*) query builder
func CountFrom(d Dialect, table string) *Builder {
	b := From(d, table)
	b.queryType = QueryTypeCount
	return b
}

// Select specifies which columns to select
func (b *Builder) Select(fields []string) *Builder {
	if b.queryType != QueryTypeSelect {
		return b
	}

	for _, field := range fields {
		b.fields = append(b.fields, b.dialect.QuoteIdent(field))
	}
	return b
}

// Where adds a predicate. A nil predicate leaves the query unfiltered.
func (b *Builder) Where(p *Predicate) *Builder {
	if p == nil || p.SQL == "" {
		return b
	}
	b.whereClauses = append(b.whereClauses, p.SQL)
	b.params = append(b.params, p.Args...)
	return b
}

// OrderBy adds ORDER BY clause
func (b *Builder) OrderBy(field string, direction string) *Builder {
	if b.queryType != QueryTypeSelect {
		return b
	}

	b.orderBy = fmt.Sprintf("ORDER BY %s %s", b.dialect.QuoteIdent(field), strings.ToUpper(direction))
	return b
}

// Limit adds LIMIT clause
func (b *Builder) Limit(n uint64) *Builder {
	if b.queryType != QueryTypeSelect {
		return b
	}

	b.limit = &n
	return b
}

// Offset adds OFFSET clause
func (b *Builder) Offset(n uint64) *Builder {
	if b.queryType != QueryTypeSelect {
		return b
	}

	b.offset = &n
	return b
}

// Build constructs the final SQL query, vets it and rebinds the placeholders
func (b *Builder) Build() (QueryResult, error) {
	sql := b.buildSelect()
	if err := b.dialect.Vet(sql); err != nil {
		return QueryResult{}, err
	}

	return QueryResult{
		SQL:    b.dialect.Rebind(sql),
		Params: b.params,
	}, nil
}

func (b *Builder) buildSelect() string {
	var parts []string

	// SELECT
	fields := "*"
	if b.queryType == QueryTypeCount {
		fields = "count(*)"
	} else if len(b.fields) > 0 {
		fields = strings.Join(b.fields, ", ")
	}
	parts = append(parts, fmt.Sprintf("SELECT %s FROM %s", fields, b.dialect.QuoteIdent(b.table)))

	// WHERE
	if len(b.whereClauses) > 0 {
		parts = append(parts, fmt.Sprintf("WHERE %s", strings.Join(b.whereClauses, " AND ")))
	}

	// ORDER BY
	if b.orderBy != "" {
		parts = append(parts, b.orderBy)
	}

	// LIMIT / OFFSET
	if b.limit != nil {
		parts = append(parts, fmt.Sprintf("LIMIT %d", *b.limit))
	}
	if b.offset != nil {
		parts = append(parts, fmt.Sprintf("OFFSET %d", *b.offset))
	}

	return strings.Join(parts, " ")
}

// PageQueries is the pair of statements that make up one table page
type PageQueries struct {
	Data  QueryResult
	Count QueryResult
}

// AssemblePage builds the data query and its matching count query from a
// single predicate. The count query carries the same WHERE clause and no
// ORDER BY, LIMIT or OFFSET.
func AssemblePage(d Dialect, table string, columns []string, p *Predicate, sortColumn, sortDirection string, limit, offset uint64) (PageQueries, error) {
	if sortDirection != constants.SortAsc && sortDirection != constants.SortDesc {
		return PageQueries{}, errors.NewQueryError(errors.ReasonInvalidSortDirection,
			fmt.Sprintf("sort direction must be 'asc' or 'desc', got '%s'", sortDirection))
	}
	if sortColumn == "" {
		return PageQueries{}, errors.NewQueryError(errors.ReasonUnknownSortColumn, "sort column is empty")
	}

	data, err := From(d, table).
		Select(columns).
		Where(p).
		OrderBy(sortColumn, sortDirection).
		Limit(limit).
		Offset(offset).
		Build()
	if err != nil {
		return PageQueries{}, err
	}

	count, err := CountFrom(d, table).Where(p).Build()
	if err != nil {
		return PageQueries{}, err
	}

	return PageQueries{Data: data, Count: count}, nil
}

// AssembleExport builds the unbounded SELECT over the export columns
func AssembleExport(d Dialect, table string, columns []string, p *Predicate) (QueryResult, error) {
	return From(d, table).Select(columns).Where(p).Build()
}
