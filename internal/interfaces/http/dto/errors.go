package dto

import (
	"net/http"

	"github.com/echodent/backend/internal/domain/shared"
)

// Transport-only error codes. Domain codes pass through unchanged so
// clients can branch on them.
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:    http.StatusBadRequest,
	shared.CodeNotFound:      http.StatusNotFound,
	shared.CodeInvalidState:  http.StatusUnprocessableEntity,
	shared.CodeLockedPeriod:  http.StatusConflict,
	shared.CodeAlreadyClosed: http.StatusConflict,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeInternal:          http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
