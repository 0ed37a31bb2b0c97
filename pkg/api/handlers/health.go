package handlers

import (
	"net/http"
	"time"

	"github.com/marmos91/treeport/pkg/sandbox"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	sandbox   *sandbox.Sandbox
	startTime time.Time
}

// NewHealthHandler creates a health handler. sb may be nil, in which case
// readiness always fails.
func NewHealthHandler(sb *sandbox.Sandbox) *HealthHandler {
	return &HealthHandler{sandbox: sb, startTime: time.Now()}
}

// Liveness handles GET /health. It succeeds whenever the server responds.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	WriteJSON(w, http.StatusOK, healthyResponse(map[string]any{
		"service":    "treeport",
		"started_at": h.startTime.UTC().Format(time.RFC3339),
		"uptime":     uptime.Round(time.Second).String(),
		"uptime_sec": int64(uptime.Seconds()),
	}))
}

// Readiness handles GET /health/ready. The served root must still exist
// and be a directory.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.sandbox == nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthyResponse("tree root not configured"))
		return
	}

	info, err := h.sandbox.Fs().Stat(h.sandbox.Root())
	if err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthyResponse("tree root unavailable: "+err.Error()))
		return
	}
	if !info.IsDir() {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthyResponse("tree root is not a directory"))
		return
	}

	WriteJSON(w, http.StatusOK, healthyResponse(map[string]string{
		"tree": "available",
	}))
}
