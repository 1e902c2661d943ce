package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnviron_Defaults(t *testing.T) {
	cfg, err := FromEnviron(nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5050", cfg.Server.Addr())
	assert.True(t, cfg.Server.Gzip)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.Query.TimeoutDuration())
	assert.False(t, cfg.Query.Snapshot)
	assert.Equal(t, "data_dir", cfg.Export.Dir)
	assert.False(t, cfg.Storage.Enabled())

	retention, err := cfg.Export.RetentionDuration()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, retention)
}

func TestFromEnviron_Overrides(t *testing.T) {
	cfg, err := FromEnviron([]string{
		"DATATABLE_SERVER_PORT=8080",
		"DATATABLE_DATABASE_DRIVER=mysql",
		"DATATABLE_DATABASE_HOST=tidb.example.com",
		"DATATABLE_QUERY_TIMEOUT=5",
		"DATATABLE_QUERY_SNAPSHOT=true",
		"DATATABLE_EXPORT_DIR=/tmp/exports",
		"DATATABLE_EXPORT_RETENTION=0",
		"DATATABLE_STORAGE_ENDPOINT=minio:9000",
		"DATATABLE_STORAGE_BUCKET=exports",
		"DATATABLE_RATELIMIT_BURST=10",
		"UNRELATED=ignored",
		"MALFORMED",
	})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "tidb.example.com", cfg.Database.Host)
	assert.Equal(t, 5*time.Second, cfg.Query.TimeoutDuration())
	assert.True(t, cfg.Query.Snapshot)
	assert.Equal(t, "/tmp/exports", cfg.Export.Dir)
	assert.True(t, cfg.Storage.Enabled())
	assert.Equal(t, "exports", cfg.Storage.Bucket)
	assert.Equal(t, 10, cfg.RateLimit.Burst)

	retention, err := cfg.Export.RetentionDuration()
	require.NoError(t, err)
	assert.Zero(t, retention)
}

func TestFromEnviron_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
	}{
		{"Unknown driver", []string{"DATATABLE_DATABASE_DRIVER=oracle"}},
		{"Zero timeout", []string{"DATATABLE_QUERY_TIMEOUT=0"}},
		{"Bad retention", []string{"DATATABLE_EXPORT_RETENTION=soon"}},
		{"Storage without bucket", []string{"DATATABLE_STORAGE_ENDPOINT=minio:9000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnviron(tt.environ)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
