package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Henrywch0714/restaurant-ordering/internal/models"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error envelope with no detail message
func WriteError(w http.ResponseWriter, status int, errText string, logger *slog.Logger) {
	WriteErrorMessage(w, status, errText, "", logger)
}

// WriteErrorMessage writes an error envelope carrying a detail message
func WriteErrorMessage(w http.ResponseWriter, status int, errText, message string, logger *slog.Logger) {
	WriteJSON(w, status, models.ErrorResponse{Error: errText, Message: message}, logger)
}

// Preflight answers CORS preflight requests with an empty JSON object.
// The CORS headers themselves come from middleware.
func Preflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{}\n"))
}

// NotFound returns a handler for unknown routes
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found", logger)
	}
}

// MethodNotAllowed returns a handler for known routes hit with an undeclared method
func MethodNotAllowed(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", logger)
	}
}
