package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/treeport/pkg/metrics"
)

func TestNewServerMetricsDisabled(t *testing.T) {
	metrics.Reset()
	assert.Nil(t, NewServerMetrics())
	assert.Nil(t, metrics.NewServerMetrics())
}

func TestServerMetricsRecords(t *testing.T) {
	metrics.InitRegistry()
	t.Cleanup(metrics.Reset)

	m := metrics.NewServerMetrics()
	require.NotNil(t, m, "init() should register the constructor")
	sm := m.(*serverMetrics)

	m.ObserveRequest("/list", "GET", 200, 3*time.Millisecond)
	m.ObserveRequest("/list", "GET", 200, time.Millisecond)
	m.ObserveRequest("/download", "GET", 404, time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(sm.requests.WithLabelValues("/list", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sm.requests.WithLabelValues("/download", "GET", "404")))

	m.ObserveTransfer("full", 4096, 10*time.Millisecond, nil)
	m.ObserveTransfer("full", 100, time.Millisecond, errors.New("reset"))
	assert.Equal(t, 1.0, testutil.ToFloat64(sm.transfers.WithLabelValues("full", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sm.transfers.WithLabelValues("full", "error")))
	assert.Equal(t, 4196.0, testutil.ToFloat64(sm.transferBytes.WithLabelValues("full")))

	m.ObserveCommand("encode", time.Millisecond, nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(sm.commands.WithLabelValues("encode", "ok")))

	m.ObserveRejection("download")
	m.ObserveRejection("download")
	assert.Equal(t, 2.0, testutil.ToFloat64(sm.rejections.WithLabelValues("download")))
}

func TestNilSafeHelpers(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.ObserveRequest(nil, "/list", "GET", 200, time.Millisecond)
		metrics.ObserveTransfer(nil, "preview", 1, time.Millisecond, nil)
		metrics.ObserveCommand(nil, "parse", time.Millisecond, nil)
		metrics.ObserveRejection(nil, "list")
	})
}
