package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "LETSHANG_"

// parseEnv overlays LETSHANG_* variables. Values from envFile are used
// only where the process environment does not set the same name.
func parseEnv(cfg *Config, envFile string, lookup func(string) (string, bool)) error {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	get := func(name string) (string, bool) {
		if v, ok := lookup(envPrefix + name); ok {
			return v, true
		}
		v, ok := fileVars[envPrefix+name]
		return v, ok
	}

	strs := map[string]*string{
		"DATABASE_DRIVER":  &cfg.DatabaseDriver,
		"DATABASE_DSN":     &cfg.DatabaseDSN,
		"PUBLIC_ORIGIN":    &cfg.PublicOrigin,
		"VIEWER_ADDR":      &cfg.ViewerAddr,
		"LOG_LEVEL":        &cfg.LogLevel,
		"LOG_FORMAT":       &cfg.LogFormat,
		"BLOB_BACKEND":     &cfg.BlobBackend,
		"URL_MODE":         &cfg.URLMode,
		"S3_USER":          &cfg.S3User,
		"S3_PASSWORD":      &cfg.S3Password,
		"S3_BUCKET":        &cfg.S3Bucket,
		"S3_REGION":        &cfg.S3Region,
		"S3_BASE_ENDPOINT": &cfg.S3BaseEndpoint,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	durs := map[string]*time.Duration{
		"PRESIGN_EXPIRY": &cfg.PresignExpiry,
		"LATENCY_CREATE": &cfg.Latency.Create,
		"LATENCY_READ":   &cfg.Latency.Read,
		"LATENCY_UPDATE": &cfg.Latency.Update,
		"LATENCY_DELETE": &cfg.Latency.Delete,
		"LATENCY_LIST":   &cfg.Latency.List,
	}
	for name, dst := range durs {
		v, ok := get(name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}
	return nil
}
