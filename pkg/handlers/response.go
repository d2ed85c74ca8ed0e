package handlers

import (
	"encoding/json"
	"net/http"
)

// apiError is the body shape of every error response.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrorResponse writes a JSON error body with the given status code.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	return writeBody(w, statusCode, apiError{Error: errorCode, Message: message})
}

// WriteJSON writes data as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	return writeBody(w, statusCode, data)
}

// writeBody marshals before touching the ResponseWriter so an encoding
// failure can still produce a clean 500 instead of a truncated body.
func writeBody(w http.ResponseWriter, statusCode int, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, err = w.Write(body)
	return err
}
