package metrics

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing input (unknown date dimension,
// absent required column, unparseable filter). Always recoverable by the
// caller.
type ValidationError struct {
	Message string
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s | details: %v", e.Message, e.Details)
	}
	return e.Message
}

// CalculationError wraps an unexpected aggregation failure with context.
type CalculationError struct {
	Message string
	Details map[string]any
	Cause   error
}

func (e *CalculationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s | details: %v", e.Message, e.Details)
	}
	return e.Message
}

func (e *CalculationError) Unwrap() error { return e.Cause }

// DataAccessError belongs to the upstream data layer; the calculation core
// only propagates it so that batch callers can tell a load failure apart from
// a compute failure.
type DataAccessError struct {
	Message string
	Cause   error
}

func (e *DataAccessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DataAccessError) Unwrap() error { return e.Cause }

func newValidationError(msg string, details map[string]any) error {
	return &ValidationError{Message: msg, Details: details}
}

func newCalculationError(msg string, cause error, details map[string]any) error {
	return &CalculationError{Message: msg, Details: details, Cause: cause}
}

// WrapDataAccess tags an upstream retrieval failure.
func WrapDataAccess(msg string, cause error) error {
	return &DataAccessError{Message: msg, Cause: cause}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsDataAccess(err error) bool {
	var de *DataAccessError
	return errors.As(err, &de)
}
