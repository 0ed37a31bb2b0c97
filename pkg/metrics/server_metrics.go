package metrics

import "time"

// ServerMetrics records HTTP request, transfer, and command activity.
type ServerMetrics interface {
	// ObserveRequest records one completed HTTP request.
	ObserveRequest(route, method string, status int, duration time.Duration)

	// ObserveTransfer records one file stream. err is the copy error, if any.
	ObserveTransfer(mode string, bytes int64, duration time.Duration, err error)

	// ObserveCommand records one executor run.
	ObserveCommand(executor string, duration time.Duration, err error)

	// ObserveRejection records a path refused by the sandbox.
	ObserveRejection(operation string)
}

// NewServerMetrics returns the Prometheus implementation, or nil when
// metrics are disabled. Callers pass the result through unchanged; the
// helpers below accept nil.
func NewServerMetrics() ServerMetrics {
	if !IsEnabled() || newPrometheusServerMetrics == nil {
		return nil
	}
	return newPrometheusServerMetrics()
}

// newPrometheusServerMetrics is set by pkg/metrics/prometheus at init,
// which keeps this package free of an import cycle.
var newPrometheusServerMetrics func() ServerMetrics

// RegisterServerMetricsConstructor installs the ServerMetrics constructor.
func RegisterServerMetricsConstructor(constructor func() ServerMetrics) {
	newPrometheusServerMetrics = constructor
}

func ObserveRequest(m ServerMetrics, route, method string, status int, duration time.Duration) {
	if m != nil {
		m.ObserveRequest(route, method, status, duration)
	}
}

func ObserveTransfer(m ServerMetrics, mode string, bytes int64, duration time.Duration, err error) {
	if m != nil {
		m.ObserveTransfer(mode, bytes, duration, err)
	}
}

func ObserveCommand(m ServerMetrics, executor string, duration time.Duration, err error) {
	if m != nil {
		m.ObserveCommand(executor, duration, err)
	}
}

func ObserveRejection(m ServerMetrics, operation string) {
	if m != nil {
		m.ObserveRejection(operation)
	}
}
