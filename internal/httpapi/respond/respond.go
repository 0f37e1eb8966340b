// Package respond writes JSON HTTP responses.
//
// Every response body, success or error, is JSON; errors always carry a
// human-readable "message" field and never internal details.
package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the uniform error response shape.
type ErrorBody struct {
	Message string `json:"message"`
}

// JSON writes data as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes a JSON error body with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Message: message})
}
