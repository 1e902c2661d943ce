package services

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/nexuscrm/datatable/internal/domain/tables"
	"github.com/nexuscrm/datatable/internal/infrastructure/persistence"
	"github.com/nexuscrm/datatable/pkg/query"
)

const testTimeout = 5 * time.Second

// fixtureRows is the number of rows in t_random created by newFixtureDB
const fixtureRows = 26

// newFixtureDB creates an SQLite database holding both registry tables.
//
// t_random: rows 1..3 carry the md5 values 'abc', 'xxdefxx' and 'ABCDEF';
// rows 4..25 are filler ('zzz<n>'); the last row is all NULL.
func newFixtureDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "fixture.db"))
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE t_random (random_num INTEGER, random_float REAL, md5 TEXT)`,
		`CREATE TABLE t_data (my_date TEXT, my_data TEXT)`,
		`INSERT INTO t_random VALUES (1, 1.5, 'abc'), (2, 2.5, 'xxdefxx'), (3, 3.5, 'ABCDEF')`,
		`INSERT INTO t_data VALUES ('2024-01-01', 'alpha'), ('2024-01-02', 'beta'), ('2024-02-01', NULL)`,
	}
	for n := 4; n < fixtureRows; n++ {
		stmts = append(stmts, fmt.Sprintf(`INSERT INTO t_random VALUES (%d, %d.5, 'zzz%d')`, n, n, n))
	}
	stmts = append(stmts, `INSERT INTO t_random VALUES (NULL, NULL, NULL)`)

	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("fixture %q: %v", s, err)
		}
	}
	return db
}

// newSQLitePageService wires a PageService over the fixture database
func newSQLitePageService(t *testing.T, db *sql.DB, snapshot bool) *PageService {
	t.Helper()
	var snap Snapshotter
	if snapshot {
		snap = persistence.NewTransactionManager(db, "sqlite")
	}
	return NewPageService(tables.DefaultRegistry(), query.SQLite{}, persistence.NewTableRepository(db), snap, testTimeout)
}

// newSQLiteExportService wires an ExportService over the fixture database
func newSQLiteExportService(t *testing.T, db *sql.DB, dir string, mirror ExportMirror) *ExportService {
	t.Helper()
	return NewExportService(tables.DefaultRegistry(), query.SQLite{}, persistence.NewTableRepository(db), dir, testTimeout, mirror)
}
