// Package config loads the server configuration from dotenv files and
// DATATABLE_-prefixed environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
// DATATABLE_DATABASE_HOST maps to database.host.
const EnvPrefix = "DATATABLE_"

// DotenvPaths are tried in order; the first one that exists is loaded
var DotenvPaths = []string{".env", "../.env", "/etc/datatable.env"}

// Config holds the server configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Query     QueryConfig     `mapstructure:"query"`
	Export    ExportConfig    `mapstructure:"export"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Gzip     bool   `mapstructure:"gzip"`
	Shutdown int    `mapstructure:"shutdown"` // seconds
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// DatabaseConfig selects the driver and how to reach it. DSN, when set,
// takes precedence over the individual fields.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Path     string `mapstructure:"path"` // sqlite file
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int    `mapstructure:"maxconns"`
}

// QueryConfig bounds every database call made on behalf of a request
type QueryConfig struct {
	Timeout  int  `mapstructure:"timeout"` // seconds
	Snapshot bool `mapstructure:"snapshot"`
}

// TimeoutDuration returns the per-request query timeout
func (q QueryConfig) TimeoutDuration() time.Duration {
	return time.Duration(q.Timeout) * time.Second
}

// ExportConfig configures where CSV exports are written and how long they are kept
type ExportConfig struct {
	Dir       string `mapstructure:"dir"`
	Retention string `mapstructure:"retention"`
	Schedule  string `mapstructure:"schedule"`
}

// RetentionDuration parses Retention. Zero disables the sweep.
func (e ExportConfig) RetentionDuration() (time.Duration, error) {
	if e.Retention == "" || e.Retention == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(e.Retention)
	if err != nil {
		return 0, fmt.Errorf("invalid export retention %q: %w", e.Retention, err)
	}
	return d, nil
}

// StorageConfig configures the optional object storage mirror for exports.
// The mirror is disabled when Endpoint is empty.
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"accesskey"`
	SecretKey string `mapstructure:"secretkey"`
	SSL       bool   `mapstructure:"ssl"`
}

// Enabled reports whether exports should be mirrored
func (s StorageConfig) Enabled() bool {
	return s.Endpoint != ""
}

// RateLimitConfig limits export requests per client IP
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// Load reads dotenv files, then the process environment, into a Config
func Load() (*Config, error) {
	for _, p := range DotenvPaths {
		if err := godotenv.Load(p); err == nil {
			log.Printf("Loaded .env from %s", p)
			break
		}
	}
	return FromEnviron(os.Environ())
}

// FromEnviron builds a Config from KEY=VALUE pairs. Keys without the
// DATATABLE_ prefix are ignored.
func FromEnviron(environ []string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for _, envStr := range environ {
		pair := strings.SplitN(envStr, "=", 2)
		if len(pair) != 2 {
			continue
		}
		key, value := pair[0], pair[1]

		if strings.HasPrefix(key, EnvPrefix) {
			// DATATABLE_QUERY_TIMEOUT -> query.timeout
			propKey := strings.TrimPrefix(key, EnvPrefix)
			propKey = strings.ToLower(strings.ReplaceAll(propKey, "_", "."))
			v.Set(propKey, value)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", constants.DefaultPort)
	v.SetDefault("server.gzip", true)
	v.SetDefault("server.shutdown", 5)

	v.SetDefault("database.driver", constants.DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "datatable")
	v.SetDefault("database.path", "datatable.db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxconns", 20)

	v.SetDefault("query.timeout", constants.DefaultQueryTimeoutSecs)
	v.SetDefault("query.snapshot", false)

	v.SetDefault("export.dir", constants.DefaultExportDir)
	v.SetDefault("export.retention", constants.DefaultExportRetention)
	v.SetDefault("export.schedule", constants.DefaultSweepSchedule)

	v.SetDefault("storage.ssl", true)

	v.SetDefault("ratelimit.rps", 2)
	v.SetDefault("ratelimit.burst", 5)
}

// Validate checks values that would otherwise fail later at runtime
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case constants.DriverPostgres, constants.DriverMySQL, constants.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Query.Timeout <= 0 {
		return fmt.Errorf("query timeout must be positive, got %d", c.Query.Timeout)
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export dir must not be empty")
	}
	if _, err := c.Export.RetentionDuration(); err != nil {
		return err
	}
	if c.Storage.Enabled() && c.Storage.Bucket == "" {
		return fmt.Errorf("storage bucket is required when storage endpoint is set")
	}
	return nil
}
