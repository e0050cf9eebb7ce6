package models

import (
	"errors"
	"fmt"
)

// ValidationError identifies a malformed input with a stable code.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates a coded validation error.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// Custom errors
var (
	ErrInvalidContext   = errors.New("invalid course context")
	ErrNegativePrice    = NewValidationError("negative_price", "clearing price must be non-negative")
	ErrUnknownPhase     = NewValidationError("unknown_phase", "phase must be one of 1-4")
	ErrRatingOutOfRange = NewValidationError("rating_out_of_range", "professor rating must be between 1 and 6")
)
