// Package config defines converter configuration and its loading.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"runtime"
)

// Compression values accepted by Validate.
var compressions = map[string]bool{
	"auto": true,
	"none": true,
	"gzip": true,
	"zstd": true,
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// OutputVersion is the target log revision, 1 to 5.
	OutputVersion int `koanf:"output_version"`

	// Compression is the output codec: auto picks one from the output
	// extension.
	Compression string `koanf:"compression"`

	// CompressionLevel is passed to the codec; 0 keeps its default.
	CompressionLevel int `koanf:"compression_level"`

	// Workers sets the batch pool size.
	Workers int `koanf:"workers"`

	// QueueSize bounds the batch job queue.
	QueueSize int `koanf:"queue_size"`

	// MetricsFile receives a Prometheus textfile after each run. Empty
	// disables it.
	MetricsFile string `koanf:"metrics_file"`

	// StrictParams makes parameter-list problems fatal.
	StrictParams bool `koanf:"strict_params"`

	// StrictMessages rejects over-long messages for binary targets instead of
	// truncating them.
	StrictMessages bool `koanf:"strict_messages"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		OutputVersion: 5,
		Compression:   "auto",
		Workers:       runtime.NumCPU(),
		QueueSize:     64,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.OutputVersion < 1 || c.OutputVersion > 5:
		return fmt.Errorf("%w: output_version %d not in 1..5", ErrInvalidConfig, c.OutputVersion)
	case !compressions[c.Compression]:
		return fmt.Errorf("%w: unknown compression %q", ErrInvalidConfig, c.Compression)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
