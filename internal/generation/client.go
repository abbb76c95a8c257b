package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Henrywch0714/restaurant-ordering/internal/config"
	"github.com/Henrywch0714/restaurant-ordering/internal/metrics"
)

// MaxResponseBytes bounds the upstream body read into memory.
const MaxResponseBytes = 32 << 20

var (
	// ErrInvalidResponse is returned when the upstream body is not JSON.
	ErrInvalidResponse = errors.New("generation API returned a non-JSON body")
	// ErrResponseTooLarge is returned when the upstream body exceeds MaxResponseBytes.
	ErrResponseTooLarge = errors.New("generation API response too large")
)

// UpstreamError reports a network-level failure talking to the generation
// API: timeout, refused connection, DNS failure or a truncated body.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Response is the upstream reply relayed to the caller unchanged.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client forwards generation requests, attaching the server-held credential.
// It is safe for concurrent use and makes exactly one attempt per call.
type Client struct {
	httpClient       *http.Client
	endpoint         string
	apiKey           string
	maxResponseBytes int64
}

// NewClient creates a client for the configured endpoint
func NewClient(cfg config.GenerationConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		endpoint:         cfg.Endpoint,
		apiKey:           cfg.APIKey,
		maxResponseBytes: MaxResponseBytes,
	}
}

// Forward posts payload to the generation API as is and returns the upstream
// status and body.
func (c *Client) Forward(ctx context.Context, payload []byte) (*Response, error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-DashScope-SSE", "disable")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.OutcomeNetworkError).Inc()
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes+1))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.OutcomeNetworkError).Inc()
		return nil, &UpstreamError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if int64(len(body)) > c.maxResponseBytes {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.OutcomeInvalidBody).Inc()
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrResponseTooLarge, c.maxResponseBytes)
	}

	if !json.Valid(body) {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.OutcomeInvalidBody).Inc()
		return nil, fmt.Errorf("%w (status %d)", ErrInvalidResponse, resp.StatusCode)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(metrics.OutcomeRelayed).Inc()
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
