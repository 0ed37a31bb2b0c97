package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/marmos91/treeport/internal/bytesize"
	"github.com/marmos91/treeport/pkg/api"
	"github.com/marmos91/treeport/pkg/command"
	"github.com/marmos91/treeport/pkg/transfer"
)

// DefaultTreeRoot is served when no root is configured.
const DefaultTreeRoot = "/srv/treeport"

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyShutdownTimeoutDefaults(cfg)
	applyMetricsDefaults(&cfg.Metrics)
	applyServerDefaults(&cfg.Server)
	applyTreeDefaults(&cfg.Tree)
	applyCommandDefaults(&cfg.Command)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyTelemetryDefaults sets OpenTelemetry defaults.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}

	applyProfilingDefaults(&cfg.Profiling)
}

// applyProfilingDefaults sets Pyroscope profiling defaults.
func applyProfilingDefaults(cfg *ProfilingConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:4040"
	}

	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
			"goroutines",
		}
	}
}

func applyShutdownTimeoutDefaults(cfg *Config) {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
}

// applyMetricsDefaults sets metrics defaults.
// Port defaults to 9090 if metrics are enabled.
func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyServerDefaults(cfg *api.APIConfig) {
	cfg.ApplyDefaults()
}

// applyTreeDefaults fills sizes and makes the root absolute.
func applyTreeDefaults(cfg *TreeConfig) {
	if cfg.Root == "" {
		cfg.Root = DefaultTreeRoot
	}
	if !filepath.IsAbs(cfg.Root) {
		if abs, err := filepath.Abs(cfg.Root); err == nil {
			cfg.Root = abs
		}
	}
	cfg.Root = filepath.Clean(cfg.Root)

	if cfg.PreviewSize == 0 {
		cfg.PreviewSize = bytesize.ByteSize(transfer.DefaultPreviewLimit)
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = bytesize.ByteSize(transfer.DefaultChunkSize)
	}
}

func applyCommandDefaults(cfg *CommandConfig) {
	if cfg.Executor == "" {
		cfg.Executor = command.KindEncode
	}
	cfg.Executor = strings.ToLower(cfg.Executor)

	if cfg.Timeout == 0 {
		cfg.Timeout = command.DefaultProcessTimeout
	}
	if cfg.MaxOutput == 0 {
		cfg.MaxOutput = bytesize.ByteSize(command.DefaultMaxOutput)
	}
	if cfg.MaxBody == 0 {
		cfg.MaxBody = 64 * bytesize.KiB
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
