package handlers

import (
	"net/mail"
	"strings"
)

// ErrorResponse is the generic error body
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// FieldError describes a single invalid request field
// swagger:model FieldError
type FieldError struct {
	// Field name
	Field string `json:"field"`
	// Human-readable message
	Message string `json:"message"`
}

// ValidationErrorResponse carries field-level validation failures
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// validEmail reports whether s parses as a bare RFC 5322 address.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// trimmed returns s without surrounding whitespace.
func trimmed(s string) string {
	return strings.TrimSpace(s)
}
