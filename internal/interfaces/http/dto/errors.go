package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Access error codes
const (
	// ErrCodeForbidden is used when the subscription does not belong
	// to the calling user
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeNotFound is used when a coordinate, subscription or
	// backend artifact is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Upstream error codes. These faults belong to the gateway's
// dependencies, not the caller, so they surface as 502.
const (
	// ErrCodeAuthUpstream is used when workspace credential
	// acquisition fails
	ErrCodeAuthUpstream = "ERR_AUTH_UPSTREAM"
	// ErrCodeBackend is used when the backend returns a non-success
	// status
	ErrCodeBackend = "ERR_BACKEND"
	// ErrCodeBackendProtocol is used when a backend response violates
	// the expected schema
	ErrCodeBackendProtocol = "ERR_BACKEND_PROTOCOL"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeForbidden: http.StatusForbidden,
	ErrCodeNotFound:  http.StatusNotFound,

	ErrCodeAuthUpstream:    http.StatusBadGateway,
	ErrCodeBackend:         http.StatusBadGateway,
	ErrCodeBackendProtocol: http.StatusBadGateway,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the wire format
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":        ErrCodeNotFound,
	"FORBIDDEN":        ErrCodeForbidden,
	"INVALID_INPUT":    ErrCodeInvalidInput,
	"BAD_REQUEST":      ErrCodeBadRequest,
	"AUTH_UPSTREAM":    ErrCodeAuthUpstream,
	"BACKEND_ERROR":    ErrCodeBackend,
	"BACKEND_PROTOCOL": ErrCodeBackendProtocol,
}

// NormalizeErrorCode converts a domain error code to the wire format
// If the code is already in the wire format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
