package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","timestamp":"2024-05-01T10:00:00Z","data":{"service":"treeport","started_at":"2024-05-01T09:00:00Z","uptime":"1h0m0s","uptime_sec":3600}}`))
	}))
	defer server.Close()

	health, err := New(server.URL).Health(context.Background())
	require.NoError(t, err)
	assert.True(t, health.Healthy())
	assert.Equal(t, "treeport", health.Data.Service)
	assert.Equal(t, int64(3600), health.Data.UptimeSec)
}

func TestReady_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health/ready", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unhealthy","timestamp":"2024-05-01T10:00:00Z","error":"tree root unavailable"}`))
	}))
	defer server.Close()

	health, err := New(server.URL).Ready(context.Background())
	require.NoError(t, err)
	assert.False(t, health.Healthy())
	assert.Equal(t, "tree root unavailable", health.Error)
}

func TestHealth_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New(server.URL).Health(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}
