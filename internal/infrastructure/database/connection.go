package database

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/nexuscrm/datatable/internal/config"
	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/nexuscrm/datatable/pkg/query"
)

// Connection wraps the shared connection pool together with the SQL
// dialect of the configured driver.
// Note: sql.DB is already thread-safe and manages its own connection pool.
// It is NOT wrapped with additional mutexes.
type Connection struct {
	db      *sql.DB
	dialect query.Dialect
}

var tlsOnce sync.Once // TLS config is registered only once per process

// Open connects to the configured database and verifies it with a ping
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Connection, error) {
	dialect, err := query.DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	driverName, dsn := dataSource(cfg)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 20
	}
	if cfg.Driver == constants.DriverSQLite {
		// single writer; readers share the one connection
		maxConns = 1
	}
	// MaxIdleConns equals MaxOpenConns so connections are not churned under load
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Connection{db: db, dialect: dialect}, nil
}

// NewConnection wraps an already opened pool. Used by tests and tools.
func NewConnection(db *sql.DB, dialect query.Dialect) *Connection {
	return &Connection{db: db, dialect: dialect}
}

func dataSource(cfg config.DatabaseConfig) (driverName, dsn string) {
	switch cfg.Driver {
	case constants.DriverMySQL:
		if cfg.DSN != "" {
			return "mysql", cfg.DSN
		}
		tlsParam := ""
		if cfg.Host != "" && cfg.Host != "127.0.0.1" && cfg.Host != "localhost" {
			// Remote host (e.g. TiDB Cloud) needs TLS with ServerName
			tlsOnce.Do(func() {
				if err := mysql.RegisterTLSConfig("tidb", &tls.Config{
					MinVersion: tls.VersionTLS12,
					ServerName: cfg.Host,
				}); err != nil {
					log.Printf("Failed to register TLS config: %v\n", err)
				}
			})
			tlsParam = "&tls=tidb"
		}
		return "mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local%s",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, tlsParam)

	case constants.DriverSQLite:
		if cfg.DSN != "" {
			return "sqlite3", cfg.DSN
		}
		return "sqlite3", "file:" + cfg.Path + "?_pragma=busy_timeout(5000)"

	default:
		if cfg.DSN != "" {
			return "pgx", cfg.DSN
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     cfg.Host + ":" + cfg.Port,
			Path:     "/" + cfg.Name,
			RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
		}
		return "pgx", u.String()
	}
}

// Dialect returns the SQL dialect of the connected database
func (c *Connection) Dialect() query.Dialect {
	return c.dialect
}

// QueryContext executes a SELECT query with context
func (c *Connection) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a SELECT query with context that returns at most one row
func (c *Connection) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return c.db.QueryRowContext(ctx, query, args...)
}

// BeginTx starts a new transaction with context
func (c *Connection) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, opts)
}

// PingContext verifies the database is reachable
func (c *Connection) PingContext(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// DB returns the underlying *sql.DB connection
func (c *Connection) DB() *sql.DB {
	return c.db
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.db.Close()
}
