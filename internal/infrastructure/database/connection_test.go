package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nexuscrm/datatable/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSource(t *testing.T) {
	t.Run("Postgres from fields", func(t *testing.T) {
		driver, dsn := dataSource(config.DatabaseConfig{
			Driver: "postgres", Host: "db", Port: "5432", User: "app", Password: "p@ss", Name: "datatable", SSLMode: "disable",
		})
		assert.Equal(t, "pgx", driver)
		assert.Equal(t, "postgres://app:p%40ss@db:5432/datatable?sslmode=disable", dsn)
	})

	t.Run("DSN wins", func(t *testing.T) {
		driver, dsn := dataSource(config.DatabaseConfig{Driver: "postgres", DSN: "postgres://x", Host: "ignored"})
		assert.Equal(t, "pgx", driver)
		assert.Equal(t, "postgres://x", dsn)
	})

	t.Run("MySQL local has no TLS", func(t *testing.T) {
		driver, dsn := dataSource(config.DatabaseConfig{
			Driver: "mysql", Host: "127.0.0.1", Port: "4000", User: "root", Name: "datatable",
		})
		assert.Equal(t, "mysql", driver)
		assert.Equal(t, "root:@tcp(127.0.0.1:4000)/datatable?charset=utf8mb4&parseTime=True&loc=Local", dsn)
	})

	t.Run("MySQL remote uses TLS", func(t *testing.T) {
		_, dsn := dataSource(config.DatabaseConfig{
			Driver: "mysql", Host: "gateway.tidbcloud.com", Port: "4000", User: "root", Name: "datatable",
		})
		assert.Contains(t, dsn, "&tls=tidb")
	})

	t.Run("SQLite path", func(t *testing.T) {
		driver, dsn := dataSource(config.DatabaseConfig{Driver: "sqlite", Path: "/tmp/x.db"})
		assert.Equal(t, "sqlite3", driver)
		assert.Equal(t, "file:/tmp/x.db?_pragma=busy_timeout(5000)", dsn)
	})
}

func TestOpen_SQLite(t *testing.T) {
	conn, err := Open(context.Background(), config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "open.db"),
	})
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "sqlite", conn.Dialect().Name())
	assert.NoError(t, conn.PingContext(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
