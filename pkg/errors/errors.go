package errors

import (
	"errors"
	"fmt"
)

// Domain error types for business logic

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrUnavailable indicates a service is unavailable
	ErrUnavailable = errors.New("service unavailable")

	// ErrNotImplemented indicates a feature that is not implemented
	ErrNotImplemented = errors.New("not implemented")
)

// Model and provider errors

var (
	// ErrProviderNotConfigured indicates a chat provider is missing required settings
	ErrProviderNotConfigured = errors.New("provider not configured")

	// ErrMissingAPIKey indicates no API key could be resolved
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrRateLimitExceeded indicates a provider rate limit was hit
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrEmptyResponse indicates the model returned no usable content
	ErrEmptyResponse = errors.New("empty model response")
)

// Agent configuration errors

var (
	// ErrUnknownAgentClass indicates an unsupported agent class in a config
	ErrUnknownAgentClass = errors.New("unknown agent class")

	// ErrUnknownTool indicates a tool name that is not registered
	ErrUnknownTool = errors.New("unknown tool")

	// ErrUnknownModel indicates a model reference that cannot be resolved
	ErrUnknownModel = errors.New("unknown model")

	// ErrToolCallLimit indicates a run exceeded its tool call budget
	ErrToolCallLimit = errors.New("tool call limit exceeded")
)

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
