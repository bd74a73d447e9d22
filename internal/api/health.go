package api

import (
	"net/http"
	"time"

	"hybrid/internal/version"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// handleHealth reports liveness of the bridge
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Info(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	}, http.StatusOK)
}
