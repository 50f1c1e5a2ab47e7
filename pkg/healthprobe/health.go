// Package healthprobe provides liveness and readiness endpoints with
// per-component readiness tracking.
package healthprobe

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// HealthChecker tracks process liveness and the readiness of named
// components. The process is ready when every registered component is.
type HealthChecker struct {
	startTime time.Time

	mu         sync.RWMutex
	components map[string]bool
}

// New creates a HealthChecker expecting the named components to report
// readiness before the process is considered ready.
func New(components ...string) *HealthChecker {
	h := &HealthChecker{
		startTime:  time.Now(),
		components: make(map[string]bool, len(components)),
	}
	for _, name := range components {
		h.components[name] = false
	}
	return h
}

// SetReady marks a component ready or not ready.
func (h *HealthChecker) SetReady(component string, ready bool) {
	h.mu.Lock()
	h.components[component] = ready
	h.mu.Unlock()
}

// ready reports overall readiness and the per-component breakdown.
func (h *HealthChecker) ready() (bool, map[string]bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	all := true
	breakdown := make(map[string]bool, len(h.components))
	for name, ok := range h.components {
		breakdown[name] = ok
		if !ok {
			all = false
		}
	}
	return all, breakdown
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status     string          `json:"status"`
	Uptime     string          `json:"uptime"`
	Components map[string]bool `json:"components,omitempty"`
}

// Health returns an HTTP handler for liveness checks.
// Always returns 200 OK if the process is running.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status: "healthy",
			Uptime: time.Since(h.startTime).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// Ready returns an HTTP handler for readiness checks.
// Returns 200 OK when every component is ready, 503 otherwise.
func (h *HealthChecker) Ready() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allReady, breakdown := h.ready()

		resp := HealthResponse{
			Status:     "ready",
			Uptime:     time.Since(h.startTime).String(),
			Components: breakdown,
		}

		w.Header().Set("Content-Type", "application/json")
		if !allReady {
			resp.Status = "not_ready"
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
