package rest

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorResponse is the JSON body returned for all failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ValidationError marks a failure caused by the caller's input. Handlers map
// it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError marks a reference to a row that does not exist. Handlers map
// it to 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// WriteError renders err as an ErrorResponse with the status matching its
// type: 400 for ValidationError, 404 for NotFoundError, 500 otherwise.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	if errors.As(err, &validationErr) {
		status = http.StatusBadRequest
	} else if errors.As(err, &notFoundErr) {
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
