package storage

import (
	"context"
	"testing"

	"github.com/nexuscrm/datatable/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DisabledWithoutEndpoint(t *testing.T) {
	c, err := NewClient(config.StorageConfig{})
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	assert.ErrorIs(t, c.Upload(context.Background(), "/tmp/a.csv"), ErrDisabled)
	assert.ErrorIs(t, c.EnsureBucket(context.Background()), ErrDisabled)
}

func TestNewClient_Enabled(t *testing.T) {
	c, err := NewClient(config.StorageConfig{
		Endpoint:  "localhost:9000",
		Bucket:    "exports",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.True(t, c.Enabled())
	assert.Equal(t, "exports", c.bucket)
}
