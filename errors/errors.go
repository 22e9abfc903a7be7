package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorTransient represents temporary errors that may be retried
	ErrorTransient ErrorClass = iota
	// ErrorInvalid represents errors due to invalid input or malformed wire data
	ErrorInvalid
	// ErrorFatal represents unrecoverable errors that should stop processing
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorTransient:
		return "transient"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Connection lifecycle errors
	ErrNotConnected     = errors.New("not connected")
	ErrAlreadyConnected = errors.New("already connected")
	ErrConnectionFailed = errors.New("connection failed")
	ErrConnectionLost   = errors.New("connection lost")
	ErrTransportClosed  = errors.New("transport closed")

	// Command correlation errors
	ErrCommandTimeout = errors.New("command timed out waiting for response")

	// Circuit breaker and retry errors
	ErrCircuitOpen        = errors.New("circuit breaker is open")
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("missing required configuration")

	// Wire format errors
	ErrParsingFailed = errors.New("parsing failed")
)

// CommandError indicates the device explicitly reported failure for a
// command, for example a "failure" body or an "ERROR:" line.
type CommandError struct {
	Command string
	Message string
}

// Error implements the error interface
func (e *CommandError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("command %q failed: %s", e.Command, e.Message)
	}
	return fmt.Sprintf("command failed: %s", e.Message)
}

// ResponseError indicates a response did not match the expected shape for
// its command family, for example a command-mirror mismatch. Reason, when
// set, names the specific expectation that failed.
type ResponseError struct {
	Expected string
	Actual   string
	Reason   string
}

// Error implements the error interface
func (e *ResponseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unexpected response: %s (expected %q, got %q)", e.Reason, e.Expected, e.Actual)
	}
	return fmt.Sprintf("unexpected response: expected %q, got %q", e.Expected, e.Actual)
}

// DeviceNotFoundError indicates the device name could not be resolved by
// the unit. It carries the device name reported in the error line.
type DeviceNotFoundError struct {
	DeviceName string
}

// Error implements the error interface
func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("device %q does not exist", e.DeviceName)
}

// DeviceQueryError indicates a bulk-query response named a device with an
// embedded, device-reported error message.
type DeviceQueryError struct {
	DeviceName string
	Message    string
}

// Error implements the error interface
func (e *DeviceQueryError) Error() string {
	return fmt.Sprintf("device %q reported error: %s", e.DeviceName, e.Message)
}

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsTransient checks if an error is transient and should be retried
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorTransient
	}

	if errors.Is(err, ErrConnectionFailed) ||
		errors.Is(err, ErrConnectionLost) ||
		errors.Is(err, ErrCommandTimeout) ||
		errors.Is(err, ErrCircuitOpen) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Common transient patterns from transport layers
	errStr := strings.ToLower(err.Error())
	transientPatterns := []string{
		"timeout",
		"connection",
		"network",
		"temporary",
		"unavailable",
	}

	for _, pattern := range transientPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// IsInvalid checks if an error is due to invalid input or malformed wire data
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	var respErr *ResponseError
	var notFound *DeviceNotFoundError
	if errors.As(err, &respErr) || errors.As(err, &notFound) {
		return true
	}

	return errors.Is(err, ErrParsingFailed) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig)
}

// IsFatal checks if an error is fatal and should stop processing
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	return false
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if IsFatal(err) {
		return ErrorFatal
	}
	if IsInvalid(err) {
		return ErrorInvalid
	}
	// Default to transient for unknown errors to allow retry
	return ErrorTransient
}

// newClassified creates a new classified error.
// Internal helper - use WrapTransient(), WrapFatal(), or WrapInvalid() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapTransient wraps an error as transient with context
func WrapTransient(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorTransient, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers of this package do not also need the standard library errors.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
