package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Detail carries the raw upstream payload for backend failures.
	// It is surfaced to operators, never returned to clients verbatim.
	Detail string `json:"detail,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrForbidden    = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
)

// NewNotFound creates a NOT_FOUND error naming the missing entity.
func NewNotFound(entity string) *DomainError {
	return &DomainError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", entity),
	}
}

// NewForbidden creates a FORBIDDEN error with a caller-facing message.
func NewForbidden(message string) *DomainError {
	return &DomainError{Code: "FORBIDDEN", Message: message}
}

// NewAuthError creates an AUTH_UPSTREAM error. Raised when the identity
// provider rejects the workspace credential; the gateway's dependency is at
// fault, not the caller.
func NewAuthError(detail string) *DomainError {
	return &DomainError{
		Code:    "AUTH_UPSTREAM",
		Message: "Failed to acquire backend credential",
		Detail:  detail,
	}
}

// NewBackendError creates a BACKEND_ERROR carrying the raw response body of
// a non-success backend call.
func NewBackendError(body string) *DomainError {
	return &DomainError{
		Code:    "BACKEND_ERROR",
		Message: "Backend request failed",
		Detail:  body,
	}
}

// NewBackendProtocolError creates a BACKEND_PROTOCOL error. The HTTP call
// succeeded but the payload violated the expected schema; kept distinct from
// BACKEND_ERROR so operators can tell transport failures from contract
// drift.
func NewBackendProtocolError(body string) *DomainError {
	return &DomainError{
		Code:    "BACKEND_PROTOCOL",
		Message: "Backend response in unexpected format",
		Detail:  body,
	}
}
