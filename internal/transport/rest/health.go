// Package rest holds the operational HTTP surface: liveness, readiness
// and health probes. The transactional core itself is consumed in-process;
// nothing here serves business operations.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

// dbPinger is the minimal database handle needed for readiness checks.
// *pgxpool.Pool satisfies it.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the /live, /ready and /health probes.
type HealthHandler struct {
	db      dbPinger
	version string
}

// NewHealthHandler creates a HealthHandler reporting the given build version.
func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Register attaches the probe routes to mux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /live", h.Live)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /health", h.Health)
}

// probeResponse is the JSON body for all three probes.
type probeResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]componentStatus `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

type componentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always 200: the process is up.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, probeResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. The core cannot accept work without its
// database, so a failed ping returns 503.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		status, code = "down", http.StatusServiceUnavailable
	}

	writeJSON(w, code, probeResponse{
		Status:    status,
		Timestamp: time.Now(),
	})
}

// Health is the detailed check: per-component status with latency,
// plus the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	overall, code := "ok", http.StatusOK
	components := make(map[string]componentStatus)

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		components["database"] = componentStatus{Status: "down"}
		overall, code = "down", http.StatusServiceUnavailable
	} else {
		components["database"] = componentStatus{
			Status:  "ok",
			Latency: time.Since(start).String(),
		}
	}

	writeJSON(w, code, probeResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
