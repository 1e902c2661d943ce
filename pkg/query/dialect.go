package query

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/nexuscrm/datatable/pkg/errors"
	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver" // value expressions for the parser
)

// Dialect captures the SQL differences between the supported databases.
// Builders always emit '?' placeholders; Rebind converts them for the driver.
type Dialect interface {
	Name() string
	QuoteIdent(name string) string
	// TextExpr casts an already quoted column to text for case-insensitive comparison
	TextExpr(column string) string
	// LikeEscape is appended to LIKE comparisons so that '\' escapes wildcards
	LikeEscape() string
	Rebind(sql string) string
	// Vet rejects statements that are not a single SELECT
	Vet(sql string) error
}

// DialectFor returns the dialect for a configured driver name
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case constants.DriverPostgres, "pgx", "":
		return Postgres{}, nil
	case constants.DriverMySQL, "tidb":
		return NewMySQL(), nil
	case constants.DriverSQLite, "sqlite3":
		return SQLite{}, nil
	}
	return nil, fmt.Errorf("unsupported database driver: %s", driver)
}

// Postgres is the default dialect
type Postgres struct{}

func (Postgres) Name() string { return constants.DriverPostgres }

func (Postgres) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (Postgres) TextExpr(column string) string {
	return column + "::text"
}

func (Postgres) LikeEscape() string { return "" }

// Rebind rewrites '?' placeholders to $1, $2, ...
func (Postgres) Rebind(sql string) string {
	var b strings.Builder
	b.Grow(len(sql) + 8)
	n := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(sql[i])
	}
	return b.String()
}

// Vet is a no-op for Postgres; statements are only ever produced by Builder.
func (Postgres) Vet(string) error { return nil }

// MySQL covers MySQL and TiDB. Statements are vetted with the TiDB parser.
type MySQL struct {
	parsers *sync.Pool
}

// NewMySQL creates a MySQL dialect with its own parser pool
func NewMySQL() MySQL {
	return MySQL{parsers: &sync.Pool{New: func() any { return parser.New() }}}
}

func (MySQL) Name() string { return constants.DriverMySQL }

func (MySQL) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (MySQL) TextExpr(column string) string {
	return "CAST(" + column + " AS CHAR)"
}

func (MySQL) LikeEscape() string { return "" }

func (MySQL) Rebind(sql string) string { return sql }

// Vet parses sql and accepts it only if it is exactly one SELECT statement
func (m MySQL) Vet(sql string) error {
	p := m.parsers.Get().(*parser.Parser)
	defer m.parsers.Put(p)

	stmts, _, err := p.Parse(sql, "", "")
	if err != nil {
		return errors.NewQueryError(errors.ReasonUnsafeStatement, fmt.Sprintf("SQL parse error: %v", err))
	}
	if len(stmts) != 1 {
		return errors.NewQueryError(errors.ReasonUnsafeStatement, "only single SQL statements are allowed")
	}
	if _, ok := stmts[0].(*ast.SelectStmt); !ok {
		return errors.NewQueryError(errors.ReasonUnsafeStatement, "only SELECT statements are allowed")
	}
	return nil
}

// SQLite backs the embedded mode used for local runs and tests
type SQLite struct{}

func (SQLite) Name() string { return constants.DriverSQLite }

func (SQLite) QuoteIdent(name string) string {
	return Postgres{}.QuoteIdent(name)
}

func (SQLite) TextExpr(column string) string {
	return "CAST(" + column + " AS TEXT)"
}

// LikeEscape is required because SQLite has no default LIKE escape character
func (SQLite) LikeEscape() string { return ` ESCAPE '\'` }

func (SQLite) Rebind(sql string) string { return sql }

func (SQLite) Vet(string) error { return nil }
