package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorTimeout    = 2   // Indicates the dispatch timed out.
	ExitErrorContract   = 3   // Indicates a use case / handler contract violation.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorValidation = 5   // Indicates the handler rejected the input.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Sentinel errors identify each error kind independently of its details.
var (
	ErrResolution         = errors.New("component cannot be resolved")
	ErrEntryPoint         = errors.New("invalid use case entry point")
	ErrArgument           = errors.New("invalid argument")
	ErrConsistency        = errors.New("inconsistent handler binding")
	ErrTypeMismatch       = errors.New("request type mismatch")
	ErrState              = errors.New("invalid orchestrator state")
	ErrNotAHandler        = errors.New("component does not implement Handler")
	ErrDuplicateComponent = errors.New("component already registered")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// Component kinds reported by ResolutionError.
const (
	KindUseCase = "use case"
	KindHandler = "handler"
)

// ResolutionError reports an identifier the registry could not turn into a
// usable component.
type ResolutionError struct {
	// Kind is the role the component was requested for (KindUseCase, KindHandler).
	Kind string
	// ID is the identifier passed to the registry.
	ID string
	// Cause is the underlying registry failure, if any.
	Cause error
}

// Error returns a message naming the component kind and identifier.
func (e ResolutionError) Error() string {
	msg := fmt.Sprintf("%s %s is not valid", e.Kind, e.ID)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the registry failure that caused the resolution error.
func (e ResolutionError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrResolution.
func (e ResolutionError) Is(target error) bool { return target == ErrResolution }

// EntryPointReason enumerates the ways a use case entry point can be malformed.
type EntryPointReason string

const (
	EntryPointMissing           EntryPointReason = "missing"
	EntryPointAmbiguous         EntryPointReason = "ambiguous"
	EntryPointTooManyParameters EntryPointReason = "tooManyParameters"
	EntryPointBadResults        EntryPointReason = "badResults"
)

// EntryPointError reports a use case whose shape does not expose exactly one
// usable entry point.
type EntryPointError struct {
	// UseCase is the identifier of the offending use case.
	UseCase string
	// Method is the entry point name, empty when Reason is EntryPointMissing.
	Method string
	// Reason classifies the defect.
	Reason EntryPointReason
}

// Error returns a message describing the entry point defect.
func (e EntryPointError) Error() string {
	switch e.Reason {
	case EntryPointMissing:
		return fmt.Sprintf("use case %s must have 'Execute' or call method", e.UseCase)
	case EntryPointAmbiguous:
		return fmt.Sprintf("use case %s must have 'Execute' or call method, but not both", e.UseCase)
	case EntryPointTooManyParameters:
		return fmt.Sprintf("the method %s of %s cannot have more than one parameter", e.Method, e.UseCase)
	case EntryPointBadResults:
		return fmt.Sprintf("the method %s of %s must return (response, error), a response, an error or nothing", e.Method, e.UseCase)
	default:
		return fmt.Sprintf("use case %s has an invalid entry point", e.UseCase)
	}
}

// Is reports whether target is ErrEntryPoint.
func (e EntryPointError) Is(target error) bool { return target == ErrEntryPoint }

// ArgumentError reports a query key that cannot be added.
type ArgumentError struct {
	// Key is the rejected query key.
	Key string
}

// Error returns a message naming the duplicate key.
func (e ArgumentError) Error() string {
	return fmt.Sprintf("argument %s is not valid: already set", e.Key)
}

// Is reports whether target is ErrArgument.
func (e ArgumentError) Is(target error) bool { return target == ErrArgument }

// ConsistencyReason enumerates arity / handler mismatches.
type ConsistencyReason string

const (
	UnnecessaryHandler ConsistencyReason = "unnecessaryHandler"
	MissingHandler     ConsistencyReason = "missingHandler"
)

// ConsistencyError reports a handler binding that does not match the arity of
// the use case entry point.
type ConsistencyError struct {
	UseCase string
	Method  string
	Reason  ConsistencyReason
}

// Error returns a message describing the mismatch.
func (e ConsistencyError) Error() string {
	if e.Reason == UnnecessaryHandler {
		return fmt.Sprintf("cannot define a handler for the use case %s that does not need a request in %s", e.UseCase, e.Method)
	}
	return fmt.Sprintf("cannot inject a request in %s of %s without a request handler", e.Method, e.UseCase)
}

// Is reports whether target is ErrConsistency.
func (e ConsistencyError) Is(target error) bool { return target == ErrConsistency }

// TypeMismatchError reports a normalized request whose type does not satisfy
// the parameter declared by the entry point.
type TypeMismatchError struct {
	UseCase  string
	Method   string
	Expected string
	Actual   string
}

// Error returns a message naming the expected and received types.
func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("method %s in %s must be %s, you passed %s", e.Method, e.UseCase, e.Expected, e.Actual)
}

// Is reports whether target is ErrTypeMismatch.
func (e TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// StateError reports a builder operation invoked in a state that does not
// allow it, such as dispatching twice.
type StateError struct {
	// Op is the rejected operation.
	Op string
	// State is the orchestrator state at the time of the call.
	State string
}

// Error returns a message naming the operation and state.
func (e StateError) Error() string {
	return fmt.Sprintf("cannot %s: orchestrator is %s", e.Op, e.State)
}

// Is reports whether target is ErrState.
func (e StateError) Is(target error) bool { return target == ErrState }

// TimeoutError represents a dispatch timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. Handlers may return
// it from Valid; the orchestrator propagates it unchanged.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field with a formatted message.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsContractError reports whether err is one of the structural contract
// violations detected by the orchestrator itself.
func IsContractError(err error) bool {
	for _, sentinel := range []error{ErrResolution, ErrEntryPoint, ErrArgument, ErrConsistency, ErrTypeMismatch, ErrState} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// ExitCode maps an error to the process exit status.
//
// Parameters:
//   - err: The error returned by a dispatch, or nil.
//
// Returns:
//   - int: One of the Exit* constants.
func ExitCode(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		timeoutErr    TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &validationErr):
		return ExitErrorValidation
	case IsContractError(err):
		return ExitErrorContract
	default:
		return ExitErrorGeneric
	}
}

// KindOf returns a short, stable label for err, suitable for metric labels.
func KindOf(err error) string {
	var validationErr ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrResolution):
		return "resolution"
	case errors.Is(err, ErrEntryPoint):
		return "entry_point"
	case errors.Is(err, ErrArgument):
		return "argument"
	case errors.Is(err, ErrConsistency):
		return "consistency"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrState):
		return "state"
	case errors.As(err, &validationErr):
		return "validation"
	case IsContextError(err):
		return "canceled"
	default:
		return "failure"
	}
}
