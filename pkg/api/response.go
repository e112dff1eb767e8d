package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// gatewayRetryAfter is the Retry-After hint on 429 responses caused by
// the upstream, where no local window expiry is known.
const gatewayRetryAfter = 3600

// WriteJSON writes body as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError writes the {"error": message} body with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteAPIError writes a caller-facing error. 429 responses carry a
// Retry-After hint.
func WriteAPIError(w http.ResponseWriter, apiErr *Error) {
	if apiErr.Status == http.StatusTooManyRequests && w.Header().Get("Retry-After") == "" {
		w.Header().Set("Retry-After", strconv.Itoa(gatewayRetryAfter))
	}
	WriteError(w, apiErr.Status, apiErr.Message)
}
