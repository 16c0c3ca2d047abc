package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/letshang/internal/flagx"
)

var overrideFlags = []string{
	"-k", "-d", "-o", "-a", "-l", "-f", "-b", "-m", "-x",
	"-u", "-p", "-s", "-g", "-e",
}

// ValueFlags lists the flags that consume the following argument. The CLI
// uses it to tell flag values apart from the optional route argument.
var ValueFlags = append([]string{"-c", "-config"}, overrideFlags...)

// parseFlags overlays command-line flags.
//
// Supported flags (short forms):
//
//	-k string   database driver ("sqlite" or "pgx")
//	-d string   database DSN
//	-o string   public origin used in share links
//	-a string   viewer bind address ("" disables the viewer)
//	-l string   log level
//	-f string   log format ("text" or "json")
//	-b string   blob backend ("db" or "s3")
//	-m string   URL mode ("local" or "presign")
//	-x int      presigned URL expiry, seconds
//	-u string   S3 user
//	-p string   S3 password
//	-s string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-nolatency  disable simulated record store latency
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, append(overrideFlags[:len(overrideFlags):len(overrideFlags)], "-nolatency"))

	fs := flag.NewFlagSet("letshang", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDriver, "k", cfg.DatabaseDriver, "database driver")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.PublicOrigin, "o", cfg.PublicOrigin, "public origin")
	fs.StringVar(&cfg.ViewerAddr, "a", cfg.ViewerAddr, "viewer address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")
	fs.StringVar(&cfg.BlobBackend, "b", cfg.BlobBackend, "blob backend")
	fs.StringVar(&cfg.URLMode, "m", cfg.URLMode, "url mode")
	expiry := fs.Int("x", int(cfg.PresignExpiry.Seconds()), "presigned url expiry (in seconds)")
	fs.StringVar(&cfg.S3User, "u", cfg.S3User, "S3 user")
	fs.StringVar(&cfg.S3Password, "p", cfg.S3Password, "S3 password")
	fs.StringVar(&cfg.S3Bucket, "s", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	noLatency := fs.Bool("nolatency", false, "disable simulated latency")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.PresignExpiry = time.Duration(*expiry) * time.Second
	if *noLatency {
		cfg.Latency = Latency{}
	}
	return nil
}
