package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// sessionCounter reports the number of live widget sessions.
type sessionCounter interface {
	Len() int
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db       dbPinger
	sessions sessionCounter
	version  string
}

// NewHealthHandler creates a HealthHandler. db may be nil when the lookup
// history is disabled; readiness then does not depend on a database.
func NewHealthHandler(db dbPinger, sessions sessionCounter, version string) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 if the history database answers (or is
// disabled), 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:    "down",
				Timestamp: time.Now(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check: database latency, session count and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]CompStatus)
	overallStatus := "ok"

	if h.db == nil {
		components["database"] = CompStatus{Status: "disabled"}
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		start := time.Now()
		err := h.db.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components["database"] = CompStatus{Status: "down"}
			overallStatus = "down"
		} else {
			components["database"] = CompStatus{Status: "ok", Latency: latency.String()}
		}
	}

	if h.sessions != nil {
		n := h.sessions.Len()
		components["sessions"] = CompStatus{Status: "ok", Count: &n}
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
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
