package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/letshang/internal/flagx"
	"github.com/dmitrijs2005/letshang/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// either "500ms" style strings or integer nanoseconds. Keys that are absent
// or empty leave the current value alone.
type JsonConfig struct {
	DatabaseDriver string         `json:"database_driver"`
	DatabaseDSN    string         `json:"database_dsn"`
	PublicOrigin   string         `json:"public_origin"`
	ViewerAddr     string         `json:"viewer_addr"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
	LatencyCreate  timex.Duration `json:"latency_create"`
	LatencyRead    timex.Duration `json:"latency_read"`
	LatencyUpdate  timex.Duration `json:"latency_update"`
	LatencyDelete  timex.Duration `json:"latency_delete"`
	LatencyList    timex.Duration `json:"latency_list"`
	BlobBackend    string         `json:"blob_backend"`
	URLMode        string         `json:"url_mode"`
	PresignExpiry  timex.Duration `json:"presign_expiry"`
	S3User         string         `json:"s3_user"`
	S3Password     string         `json:"s3_password"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
}

// parseJSON loads the file named by -c/-config in args, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&cfg.DatabaseDriver, c.DatabaseDriver)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.PublicOrigin, c.PublicOrigin)
	setString(&cfg.ViewerAddr, c.ViewerAddr)
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.LogFormat, c.LogFormat)
	setString(&cfg.BlobBackend, c.BlobBackend)
	setString(&cfg.URLMode, c.URLMode)
	setString(&cfg.S3User, c.S3User)
	setString(&cfg.S3Password, c.S3Password)
	setString(&cfg.S3Bucket, c.S3Bucket)
	setString(&cfg.S3Region, c.S3Region)
	setString(&cfg.S3BaseEndpoint, c.S3BaseEndpoint)

	setDuration(&cfg.Latency.Create, c.LatencyCreate)
	setDuration(&cfg.Latency.Read, c.LatencyRead)
	setDuration(&cfg.Latency.Update, c.LatencyUpdate)
	setDuration(&cfg.Latency.Delete, c.LatencyDelete)
	setDuration(&cfg.Latency.List, c.LatencyList)
	setDuration(&cfg.PresignExpiry, c.PresignExpiry)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
