package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Database status values reported by the menu service.
const (
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger   *slog.Logger
	database string
}

// NewHealthHandler creates a health handler that reports liveness only
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger: logger,
	}
}

// WithDatabase records the datastore outcome observed at startup.
// The reported status is fixed from then on; it is never re-probed.
func (h *HealthHandler) WithDatabase(connected bool) *HealthHandler {
	status := DatabaseDisconnected
	if connected {
		status = DatabaseConnected
	}
	return &HealthHandler{
		logger:   h.logger,
		database: status,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:   "ok",
		Database: h.database,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode health response", "error", err)
	}
}
