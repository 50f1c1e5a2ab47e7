package httpserver

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// ErrorResponse represents an HTTP error response. Messages are written
// for the caller and never include another wallet's stored fields.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
