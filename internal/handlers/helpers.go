package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Henrywch0714/restaurant-ordering/internal/models"
)

const (
	// maxBodyBytes bounds dish request bodies.
	maxBodyBytes = 1 << 20
	// maxProxyBodyBytes bounds generation payloads, which carry the whole chat history.
	maxProxyBodyBytes = 32 << 20
)

// decodeDish reads a JSON object from the request body.
// A null body decodes to an empty dish.
func decodeDish(w http.ResponseWriter, r *http.Request) (models.Dish, error) {
	var dish models.Dish
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&dish); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("invalid request body: trailing data after JSON object")
	}
	if dish == nil {
		dish = models.Dish{}
	}
	return dish, nil
}

// readJSONBody reads at most limit bytes of raw request body and checks that it is JSON.
func readJSONBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("request body is not valid JSON")
	}
	return body, nil
}
