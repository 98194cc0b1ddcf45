package handlers

import (
	"net/http"
	"runtime"
	"time"

	"media-gallery/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	PathMode         string `json:"pathMode"`
	RenderWorkers    int    `json:"renderWorkers"`
	RendersInFlight  int    `json:"rendersInFlight"`
	MediaRootHealthy bool   `json:"mediaRootHealthy"`

	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// mediaRootReady reports whether the media root is a readable directory.
func (h *Handlers) mediaRootReady() bool {
	info, err := h.root.Fs().Stat(h.root.Resolve("/"))
	return err == nil && info.IsDir()
}

// HealthCheck returns the health status of the service. The process can
// always render placeholders, so a missing media root is reported as
// degraded rather than failing the check.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	rootOK := h.mediaRootReady()

	response := HealthResponse{
		Status:           statusHealthy,
		Ready:            rootOK,
		Version:          startup.Version,
		Uptime:           time.Since(h.startTime).Round(time.Second).String(),
		PathMode:         string(h.root.Mode()),
		RenderWorkers:    h.limiter.Capacity(),
		RendersInFlight:  h.limiter.InUse(),
		MediaRootHealthy: rootOK,
		GoVersion:        runtime.Version(),
		NumCPU:           runtime.NumCPU(),
		NumGoroutine:     runtime.NumGoroutine(),
	}
	if !rootOK {
		response.Status = statusDegraded
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	writeJSON(w, response)
}

// LivenessCheck is a simple liveness check (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{"status": "alive"})
	}
}

// ReadinessCheck returns 200 only when the media root can be read
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	if h.mediaRootReady() {
		writeJSONStatus(w, http.StatusOK, "ready")
		return
	}
	writeJSONStatus(w, http.StatusServiceUnavailable, "not_ready")
}
