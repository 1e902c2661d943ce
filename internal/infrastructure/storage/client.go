package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nexuscrm/datatable/internal/config"
)

// ErrDisabled is returned when storage is not configured.
var ErrDisabled = fmt.Errorf("storage service not configured")

const csvContentType = "text/csv"

// Client mirrors finished CSV exports into a single bucket
type Client struct {
	mc      *minio.Client
	bucket  string
	enabled bool
}

// NewClient creates a storage client. If config has empty Endpoint, the client is disabled (all ops return ErrDisabled).
func NewClient(cfg config.StorageConfig) (*Client, error) {
	if !cfg.Enabled() {
		return &Client{enabled: false}, nil
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.SSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &Client{mc: mc, bucket: cfg.Bucket, enabled: true}, nil
}

// EnsureBucket creates the export bucket if it does not exist (idempotent).
func (c *Client) EnsureBucket(ctx context.Context) error {
	if !c.enabled {
		return ErrDisabled
	}
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
}

// Upload copies a local export file into the bucket, keyed by its file name
func (c *Client) Upload(ctx context.Context, path string) error {
	if !c.enabled {
		return ErrDisabled
	}
	if err := c.EnsureBucket(ctx); err != nil {
		return err
	}
	_, err := c.mc.FPutObject(ctx, c.bucket, filepath.Base(path), path, minio.PutObjectOptions{ContentType: csvContentType})
	return err
}

// Enabled reports whether the storage client is configured.
func (c *Client) Enabled() bool {
	return c.enabled
}
