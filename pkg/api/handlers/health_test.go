package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"

	"github.com/marmos91/treeport/pkg/sandbox"
)

func TestLiveness_ReturnsOK(t *testing.T) {
	handler := NewHealthHandler(nil)
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	handler.Liveness(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Status != "healthy" {
		t.Errorf("Expected status 'healthy', got '%s'", resp.Status)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected Data to be a map, got %T", resp.Data)
	}

	if data["service"] != "treeport" {
		t.Errorf("Expected service 'treeport', got '%s'", data["service"])
	}
	if _, ok := data["started_at"].(string); !ok {
		t.Errorf("Expected started_at string, got %T", data["started_at"])
	}
	if _, ok := data["uptime_sec"].(float64); !ok {
		t.Errorf("Expected numeric uptime_sec, got %T", data["uptime_sec"])
	}
}

func TestReadiness_NoSandbox_Returns503(t *testing.T) {
	handler := NewHealthHandler(nil)
	req := httptest.NewRequest("GET", "/health/ready", nil)
	w := httptest.NewRecorder()

	handler.Readiness(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Status != "unhealthy" {
		t.Errorf("Expected status 'unhealthy', got '%s'", resp.Status)
	}
}

func TestReadiness_RootPresent_ReturnsOK(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/srv", 0o755); err != nil {
		t.Fatalf("Failed to create root: %v", err)
	}
	sb, err := sandbox.New(fs, "/srv")
	if err != nil {
		t.Fatalf("Failed to create sandbox: %v", err)
	}

	handler := NewHealthHandler(sb)
	w := httptest.NewRecorder()
	handler.Readiness(w, httptest.NewRequest("GET", "/health/ready", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestReadiness_RootRemoved_Returns503(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/srv", 0o755); err != nil {
		t.Fatalf("Failed to create root: %v", err)
	}
	sb, err := sandbox.New(fs, "/srv")
	if err != nil {
		t.Fatalf("Failed to create sandbox: %v", err)
	}
	if err := fs.RemoveAll("/srv"); err != nil {
		t.Fatalf("Failed to remove root: %v", err)
	}

	handler := NewHealthHandler(sb)
	w := httptest.NewRecorder()
	handler.Readiness(w, httptest.NewRequest("GET", "/health/ready", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}
}
