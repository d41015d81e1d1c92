// Package config holds the settings of a record store process: where databases
// live, how table units are encoded, and where logs go.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leengari/recordstore/internal/storage"
)

// Environment variables read by FromEnv
const (
	EnvBaseDir     = "RECORDSTORE_BASE_DIR"
	EnvFormat      = "RECORDSTORE_FORMAT"
	EnvCompression = "RECORDSTORE_COMPRESSION"
	EnvLogLevel    = "RECORDSTORE_LOG_LEVEL"
	EnvSeqURL      = "RECORDSTORE_SEQ_URL"
	EnvLogFile     = "RECORDSTORE_LOG_FILE"
)

type Config struct {
	// Directory that holds one subdirectory per database
	BaseDir string

	// Table unit encoding: json or bson
	Format string

	// Table unit compression: none, snappy, zstd or lz4
	Compression string

	Log Logging
}

type Logging struct {
	Level  string // debug, info, warn, error
	SeqURL string // Seq ingestion endpoint; empty disables the Seq sink
	File   string // JSON log file written through zap; empty disables it
}

func Default() Config {
	return Config{
		BaseDir:     "databases",
		Format:      string(storage.FormatJSON),
		Compression: string(storage.CompressionNone),
		Log: Logging{
			Level: "info",
		},
	}
}

// FromEnv starts from Default and applies any RECORDSTORE_* variables that are set
func FromEnv() (Config, error) {
	cfg := Default()

	overrides := []struct {
		env string
		dst *string
	}{
		{EnvBaseDir, &cfg.BaseDir},
		{EnvFormat, &cfg.Format},
		{EnvCompression, &cfg.Compression},
		{EnvLogLevel, &cfg.Log.Level},
		{EnvSeqURL, &cfg.Log.SeqURL},
		{EnvLogFile, &cfg.Log.File},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok {
			*o.dst = strings.TrimSpace(v)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BindFlags registers command line flags that override the current values
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.BaseDir, "basedir", c.BaseDir, "Directory to store databases in")
	fs.StringVar(&c.Format, "format", c.Format, "Table unit format (json, bson)")
	fs.StringVar(&c.Compression, "compression", c.Compression, "Table unit compression (none, snappy, zstd, lz4)")
	fs.StringVar(&c.Log.Level, "loglevel", c.Log.Level, "Log level (debug, info, warn, error)")
	fs.StringVar(&c.Log.SeqURL, "sequrl", c.Log.SeqURL, "Seq server URL for structured logs")
	fs.StringVar(&c.Log.File, "logfile", c.Log.File, "Write JSON logs to this file")
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseDir) == "" {
		return fmt.Errorf("config: base directory must not be empty")
	}
	if _, err := c.Codec(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Codec resolves the configured table unit encoding
func (c Config) Codec() (storage.Codec, error) {
	return storage.ParseCodec(c.Format, c.Compression)
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
