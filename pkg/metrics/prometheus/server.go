// Package prometheus provides the Prometheus-backed metric implementations.
// Import it for side effects to enable them:
//
//	import _ "github.com/marmos91/treeport/pkg/metrics/prometheus"
package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/treeport/pkg/metrics"
)

func init() {
	metrics.RegisterServerMetricsConstructor(NewServerMetrics)
}

// serverMetrics is the Prometheus implementation of metrics.ServerMetrics.
type serverMetrics struct {
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	transfers        *prometheus.CounterVec
	transferBytes    *prometheus.CounterVec
	transferDuration *prometheus.HistogramVec
	commands         *prometheus.CounterVec
	commandDuration  *prometheus.HistogramVec
	rejections       *prometheus.CounterVec
}

// NewServerMetrics creates a Prometheus-backed ServerMetrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewServerMetrics() metrics.ServerMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &serverMetrics{
		requests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "treeport_http_requests_total",
				Help: "Total number of HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "treeport_http_request_duration_milliseconds",
				Help: "Duration of HTTP requests in milliseconds",
				Buckets: []float64{
					1, // listings and previews
					5,
					10,
					50,
					100,
					500,
					1000,
					5000,
					30000, // large downloads
				},
			},
			[]string{"route", "method"},
		),
		transfers: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "treeport_transfers_total",
				Help: "Total number of file streams by mode and outcome",
			},
			[]string{"mode", "status"}, // status: "ok", "error"
		),
		transferBytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "treeport_transfer_bytes_total",
				Help: "Total bytes streamed to clients by mode",
			},
			[]string{"mode"},
		),
		transferDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "treeport_transfer_duration_milliseconds",
				Help:    "Duration of file streams in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"mode"},
		),
		commands: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "treeport_commands_total",
				Help: "Total number of command executions by executor and outcome",
			},
			[]string{"executor", "status"},
		),
		commandDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "treeport_command_duration_milliseconds",
				Help:    "Duration of command executions in milliseconds",
				Buckets: []float64{0.1, 1, 10, 100, 1000, 10000, 60000},
			},
			[]string{"executor"},
		),
		rejections: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "treeport_path_rejections_total",
				Help: "Total number of client paths refused by the sandbox",
			},
			[]string{"operation"},
		),
	}
}

func (m *serverMetrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(millis(duration))
}

func (m *serverMetrics) ObserveTransfer(mode string, bytes int64, duration time.Duration, err error) {
	m.transfers.WithLabelValues(mode, outcome(err)).Inc()
	if bytes > 0 {
		m.transferBytes.WithLabelValues(mode).Add(float64(bytes))
	}
	m.transferDuration.WithLabelValues(mode).Observe(millis(duration))
}

func (m *serverMetrics) ObserveCommand(executor string, duration time.Duration, err error) {
	m.commands.WithLabelValues(executor, outcome(err)).Inc()
	m.commandDuration.WithLabelValues(executor).Observe(millis(duration))
}

func (m *serverMetrics) ObserveRejection(operation string) {
	m.rejections.WithLabelValues(operation).Inc()
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
