package middleware

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Destination string `json:"destination,omitempty"`
}

// writeError mirrors the handlers' error envelope for responses produced
// before a handler runs.
func writeError(w http.ResponseWriter, status int, code, message, destination string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]errorBody{
		"error": {Code: code, Message: message, Destination: destination},
	})
}
