package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/treeport/pkg/apiclient"
)

func healthServer(t *testing.T, readyStatus int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/health":
			_, _ = w.Write([]byte(`{"status":"healthy","timestamp":"2024-05-01T10:00:00Z","data":{"service":"treeport","started_at":"2024-05-01T09:00:00Z","uptime_sec":3600}}`))
		case "/health/ready":
			w.WriteHeader(readyStatus)
			if readyStatus == http.StatusOK {
				_, _ = w.Write([]byte(`{"status":"healthy","timestamp":"2024-05-01T10:00:00Z","data":{"tree":"available"}}`))
			} else {
				_, _ = w.Write([]byte(`{"status":"unhealthy","timestamp":"2024-05-01T10:00:00Z","error":"tree root unavailable"}`))
			}
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProbeStatus_Ready(t *testing.T) {
	server := healthServer(t, http.StatusOK)

	var status ServerStatus
	probeStatus(context.Background(), apiclient.New(server.URL), &status)

	assert.True(t, status.Running)
	assert.True(t, status.Healthy)
	assert.True(t, status.Ready)
	assert.Equal(t, int64(3600), status.UptimeSec)
}

func TestProbeStatus_NotReady(t *testing.T) {
	server := healthServer(t, http.StatusServiceUnavailable)

	var status ServerStatus
	probeStatus(context.Background(), apiclient.New(server.URL), &status)

	assert.True(t, status.Running)
	assert.False(t, status.Ready)
	assert.Contains(t, status.Message, "tree root unavailable")
}

func TestProbeStatus_Unreachable(t *testing.T) {
	server := healthServer(t, http.StatusOK)
	url := server.URL
	server.Close()

	status := ServerStatus{Running: true, PID: 42}
	probeStatus(context.Background(), apiclient.New(url), &status)

	assert.False(t, status.Healthy)
	assert.Equal(t, "Server process exists but health check failed", status.Message)
}

func TestPrintStatusTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStatusTable(&buf, ServerStatus{
		Running:   true,
		Ready:     true,
		PID:       1234,
		StartedAt: "2024-05-01T09:00:00Z",
		UptimeSec: 3725,
		Message:   "ok",
	}))

	out := buf.String()
	assert.Contains(t, out, "Running")
	assert.Contains(t, out, "1234")
	assert.Contains(t, out, "1h 2m 5s")
}
