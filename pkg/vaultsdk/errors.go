package vaultsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/quillworks/promptvault/pkg/httpx"
)

// APIError is the uniform error shape of the PromptVault API. It implements
// the error interface and is used both by the server (to write responses)
// and by the SDK client (to represent non-2xx responses).
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Message is the human-readable error message.
	Message string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: e.Message})
}

// Predefined errors shared between handlers and tests. Endpoint-specific
// messages are built with NewAPIError at the call site.
var (
	// ErrNotAuthenticated is returned when no authenticated session exists.
	ErrNotAuthenticated = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "not authenticated",
	}

	// ErrInvalidRequestBody is returned when the JSON body cannot be parsed.
	ErrInvalidRequestBody = &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "invalid request body",
	}

	// ErrServerError is the generic internal failure; details stay in the logs.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "internal server error",
	}
)

// NewAPIError builds an APIError with the given status and message.
func NewAPIError(status int, message string) *APIError {
	return &APIError{StatusCode: status, Message: message}
}

// parseErrorResponse turns a non-2xx response body into a typed *APIError.
func parseErrorResponse(statusCode int, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{StatusCode: statusCode, Message: errResp.Error}
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("unexpected response (status %d)", statusCode),
	}
}
