package handler

import (
	"encoding/json"
	"net/http"
)

// response is the JSON envelope every card endpoint returns. The client
// relies on this exact shape; Data and Error are omitted when unset.
type response struct {
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"statusCode"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Message: message, StatusCode: status})
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, response{Message: message, Data: data, StatusCode: status})
}

// writeInternalError passes the underlying error message through to the
// client body, matching the established API contract.
func writeInternalError(w http.ResponseWriter, message string, err error) {
	writeJSON(w, http.StatusInternalServerError, response{
		Message:    message,
		Error:      err.Error(),
		StatusCode: http.StatusInternalServerError,
	})
}
