package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Error types for the hexcore engine
type ErrorType string

const (
	// Buffer errors
	ErrorTypeOutOfRange ErrorType = "out_of_range"

	// Comparison errors
	ErrorTypeCompare   ErrorType = "compare"
	ErrorTypeCancelled ErrorType = "cancelled"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"

	// Internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// BufferError represents a buffer access with an index outside the valid
// logical range. It is a contract violation by the caller, never recovered
// internally: the buffer does not clamp indices.
type BufferError struct {
	Type      ErrorType
	Operation string
	Index     int
	Length    int
	Timestamp time.Time
}

// NewOutOfRangeError creates a buffer out-of-range error.
func NewOutOfRangeError(op string, index, length int) *BufferError {
	return &BufferError{
		Type:      ErrorTypeOutOfRange,
		Operation: op,
		Index:     index,
		Length:    length,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface
func (e *BufferError) Error() string {
	return fmt.Sprintf("buffer %s: index %d out of range for length %d", e.Operation, e.Index, e.Length)
}

// CompareError represents an error during a diff computation
type CompareError struct {
	Type       ErrorType
	Stage      string
	Underlying error
	Timestamp  time.Time
}

// NewCompareError creates a new compare error with context
func NewCompareError(stage string, err error) *CompareError {
	return &CompareError{
		Type:       ErrorTypeCompare,
		Stage:      stage,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// NewCancelledError marks a comparison aborted at a cooperative yield point.
// A cancelled comparison never produces a partial result.
func NewCancelledError(stage string, err error) *CompareError {
	return &CompareError{
		Type:       ErrorTypeCancelled,
		Stage:      stage,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *CompareError) Error() string {
	if e.Type == ErrorTypeCancelled {
		return fmt.Sprintf("comparison cancelled during %s: %v", e.Stage, e.Underlying)
	}
	return fmt.Sprintf("comparison failed during %s: %v", e.Stage, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *CompareError) Unwrap() error {
	return e.Underlying
}

// IsCancelled reports whether err is a comparison aborted by cancellation.
func IsCancelled(err error) bool {
	var ce *CompareError
	if stderrors.As(err, &ce) {
		return ce.Type == ErrorTypeCancelled
	}
	return false
}

// IsOutOfRange reports whether err is a buffer out-of-range error.
func IsOutOfRange(err error) bool {
	var be *BufferError
	return stderrors.As(err, &be)
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}
