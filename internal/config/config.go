package config

import (
	"fmt"
	"os"
	"time"
)

const (
	BlobBackendDB = "db"
	BlobBackendS3 = "s3"

	URLModeLocal   = "local"
	URLModePresign = "presign"
)

// Latency holds the simulated round trip per record store call.
type Latency struct {
	Create time.Duration
	Read   time.Duration
	Update time.Duration
	Delete time.Duration
	List   time.Duration
}

// Config holds runtime settings for letshang.
//
// Fields:
//   - DatabaseDriver: "sqlite" (embedded file) or "pgx" (PostgreSQL).
//   - DatabaseDSN: file path for sqlite, connection URL for pgx.
//   - PublicOrigin: origin used in share links and local image URLs.
//   - ViewerAddr: bind address of the local viewer; empty disables it.
//   - BlobBackend: "db" keeps images in the database, "s3" in a bucket.
//   - URLMode: "local" serves images through the viewer, "presign" hands
//     out presigned S3 URLs (requires the s3 backend).
type Config struct {
	DatabaseDriver string
	DatabaseDSN    string
	PublicOrigin   string
	ViewerAddr     string
	LogLevel       string
	LogFormat      string
	Latency        Latency

	BlobBackend   string
	URLMode       string
	PresignExpiry time.Duration

	S3User         string
	S3Password     string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "letshang.db"
	c.PublicOrigin = "http://localhost:8080"
	c.ViewerAddr = "127.0.0.1:8080"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Latency = Latency{
		Create: 500 * time.Millisecond,
		Read:   300 * time.Millisecond,
		Update: 400 * time.Millisecond,
		Delete: 300 * time.Millisecond,
		List:   400 * time.Millisecond,
	}
	c.BlobBackend = BlobBackendDB
	c.URLMode = URLModeLocal
	c.PresignExpiry = 15 * time.Minute
	c.S3User = "admin"
	c.S3Password = "secretpassword"
	c.S3Bucket = "letshang"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// Validate rejects combinations the application cannot run with.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	switch c.BlobBackend {
	case BlobBackendDB, BlobBackendS3:
	default:
		return fmt.Errorf("unsupported blob backend %q", c.BlobBackend)
	}
	switch c.URLMode {
	case URLModeLocal:
	case URLModePresign:
		if c.BlobBackend != BlobBackendS3 {
			return fmt.Errorf("url mode %q needs the %q blob backend", URLModePresign, BlobBackendS3)
		}
	default:
		return fmt.Errorf("unsupported url mode %q", c.URLMode)
	}
	if c.PublicOrigin == "" {
		return fmt.Errorf("public origin must not be empty")
	}
	return nil
}

// Load builds a Config from defaults, envFile (if present), the process
// environment, the JSON file named in args and finally the flags in args.
func Load(args []string, envFile string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, envFile, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args and ./.env.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], ".env")
}
