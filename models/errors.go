package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by lookups for unknown products, orders and users.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials does not say whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError collects user-correctable input problems. Fields names the
// offending inputs in a stable order.
type ValidationError struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// NewValidationError builds a ValidationError for the given fields.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
