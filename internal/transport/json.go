package transport

import (
	"encoding/json"
	"net/http"
)

// Failure is the body of every non-2xx API response.
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Hint is the body of the informational GET endpoints.
type Hint struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Failure{Success: false, Message: message})
}
