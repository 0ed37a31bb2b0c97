package config

import (
	"github.com/marmos91/treeport/internal/logger"
	"github.com/marmos91/treeport/pkg/metrics"
)

// MetricsResult holds what InitializeMetrics set up.
type MetricsResult struct {
	// Server exposes /metrics. Nil when metrics are disabled.
	Server *metrics.Server

	// ServerMetrics records HTTP activity. Nil when metrics are disabled.
	ServerMetrics metrics.ServerMetrics
}

// InitializeMetrics creates the registry, collectors and metrics server
// when cfg.Metrics.Enabled is set. The Prometheus implementation must be
// linked in by importing pkg/metrics/prometheus.
func InitializeMetrics(cfg *Config) MetricsResult {
	if !cfg.Metrics.Enabled {
		return MetricsResult{}
	}

	metrics.InitRegistry()
	logger.Debug("Metrics registry initialized", "port", cfg.Metrics.Port)

	return MetricsResult{
		Server:        metrics.NewServer(cfg.Metrics.Port),
		ServerMetrics: metrics.NewServerMetrics(),
	}
}
