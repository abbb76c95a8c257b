package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Henrywch0714/restaurant-ordering/internal/generation"
)

// forwarder sends a JSON payload to the generation API
type forwarder interface {
	Forward(ctx context.Context, payload []byte) (*generation.Response, error)
}

// ProxyHandler relays chatbot requests to the generation API so the browser
// never sees the API credential.
type ProxyHandler struct {
	client forwarder
	logger *slog.Logger
}

// NewProxyHandler creates a new proxy handler
func NewProxyHandler(client forwarder, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		client: client,
		logger: logger,
	}
}

// Forward handles POST /api/qwen
// The upstream status code and body are returned verbatim.
func (h *ProxyHandler) Forward(w http.ResponseWriter, r *http.Request) {
	payload, err := readJSONBody(w, r, maxProxyBodyBytes)
	if err != nil {
		h.logger.Warn("rejected generation request", "error", err)
		WriteErrorMessage(w, http.StatusInternalServerError, "Server error", err.Error(), h.logger)
		return
	}

	resp, err := h.client.Forward(r.Context(), payload)
	if err != nil {
		var upstreamErr *generation.UpstreamError
		if errors.As(err, &upstreamErr) {
			h.logger.Error("generation API request failed", "error", err)
			WriteErrorMessage(w, http.StatusInternalServerError, "API request failed", err.Error(), h.logger)
			return
		}

		h.logger.Error("failed to relay generation response", "error", err)
		WriteErrorMessage(w, http.StatusInternalServerError, "Server error", err.Error(), h.logger)
		return
	}

	h.logger.Debug("relayed generation response", "status", resp.StatusCode, "bytes", len(resp.Body))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		h.logger.Error("failed to write generation response", "error", err)
	}
}
