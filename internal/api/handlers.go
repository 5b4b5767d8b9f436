package api

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/diz-unimr/adt2fhir/internal/stats"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	stats *stats.Registry
	ready atomic.Bool
}

// NewHandlers creates new handlers
func NewHandlers(registry *stats.Registry) *Handlers {
	return &Handlers{stats: registry}
}

// Health handles liveness probes; it answers 200 as soon as the process is
// up, regardless of readiness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "adt2fhir",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles readiness probes. It answers 503 until the mapping fixtures
// are loaded and the bus clients are constructed.
func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		respondError(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Stats serves the per-worker processing counters.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]interface{}{
		"workers": h.stats.Snapshot(),
	})
}

// Helper functions

func respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
