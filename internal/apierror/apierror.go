// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package. Unexpected errors are
// reported as a generic message and never carry stack traces; a failed write or
// lookup is reported as "Failed to <op> <resource>: <cause>", cause included.
package apierror

const statusError = "error"

// ValidationMessage is the fixed message carried by every 422 response.
const ValidationMessage = "Verification failed, please check that the value entered are correct"

// APIError is the canonical error envelope for 4xx/5xx HTTP responses.
type APIError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Status: statusError, Message: msg}
}

// ValidationError lists the violated rule messages of every failing field.
type ValidationError struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func NewValidation(fields map[string][]string) *ValidationError {
	return &ValidationError{Status: statusError, Message: ValidationMessage, Errors: fields}
}
