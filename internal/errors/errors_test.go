// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("unknown format %q for flag %s", "xml", "--format"),
			expected: `unknown format "xml" for flag --format`,
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestContractErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		sentinel error
		expected string
	}{
		{
			name:     "Use case resolution",
			err:      ResolutionError{Kind: KindUseCase, ID: "greet"},
			sentinel: ErrResolution,
			expected: "use case greet is not valid",
		},
		{
			name:     "Handler resolution with cause",
			err:      ResolutionError{Kind: KindHandler, ID: "greet.handler", Cause: ErrNotAHandler},
			sentinel: ErrResolution,
			expected: "handler greet.handler is not valid: component does not implement Handler",
		},
		{
			name:     "Missing entry point",
			err:      EntryPointError{UseCase: "noop", Reason: EntryPointMissing},
			sentinel: ErrEntryPoint,
			expected: "use case noop must have 'Execute' or call method",
		},
		{
			name:     "Ambiguous entry point",
			err:      EntryPointError{UseCase: "both", Reason: EntryPointAmbiguous},
			sentinel: ErrEntryPoint,
			expected: "use case both must have 'Execute' or call method, but not both",
		},
		{
			name:     "Too many parameters",
			err:      EntryPointError{UseCase: "multi", Method: "Execute", Reason: EntryPointTooManyParameters},
			sentinel: ErrEntryPoint,
			expected: "the method Execute of multi cannot have more than one parameter",
		},
		{
			name:     "Duplicate argument",
			err:      ArgumentError{Key: "foo"},
			sentinel: ErrArgument,
			expected: "argument foo is not valid: already set",
		},
		{
			name:     "Unnecessary handler",
			err:      ConsistencyError{UseCase: "version", Method: "Execute", Reason: UnnecessaryHandler},
			sentinel: ErrConsistency,
			expected: "cannot define a handler for the use case version that does not need a request in Execute",
		},
		{
			name:     "Missing handler",
			err:      ConsistencyError{UseCase: "greet", Method: "Execute", Reason: MissingHandler},
			sentinel: ErrConsistency,
			expected: "cannot inject a request in Execute of greet without a request handler",
		},
		{
			name:     "Type mismatch",
			err:      TypeMismatchError{UseCase: "greet", Method: "Execute", Expected: "catalog.GreetRequest", Actual: "string"},
			sentinel: ErrTypeMismatch,
			expected: "method Execute in greet must be catalog.GreetRequest, you passed string",
		},
		{
			name:     "State",
			err:      StateError{Op: "dispatch", State: "dispatched"},
			sentinel: ErrState,
			expected: "cannot dispatch: orchestrator is dispatched",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is should match %v", tt.sentinel)
			}
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is should match %v through wrapping", tt.sentinel)
			}
			if !IsContractError(wrapped) {
				t.Error("IsContractError should be true")
			}
		})
	}
}

func TestResolutionError_Unwrap(t *testing.T) {
	t.Parallel()
	err := ResolutionError{Kind: KindHandler, ID: "h", Cause: ErrNotAHandler}
	if !errors.Is(err, ErrNotAHandler) {
		t.Error("errors.Is should find the cause in the chain")
	}
	var resErr ResolutionError
	if !errors.As(fmt.Errorf("ctx: %w", err), &resErr) {
		t.Fatal("errors.As should extract ResolutionError")
	}
	if resErr.Kind != KindHandler {
		t.Errorf("expected Kind %q, got %q", KindHandler, resErr.Kind)
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "dispatch greet", Limit: 30 * time.Second}
	expected := `operation "dispatch greet" timed out after 30s`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error returns formatted message",
			err:      ValidationError{Field: "name", Message: "must not be empty"},
			expected: `validation error for "name": must not be empty`,
		},
		{
			name:     "NewValidationError formats message",
			err:      NewValidationError("count", "must be at most %d", 3),
			expected: `validation error for "count": must be at most 3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			var validationErr ValidationError
			if !errors.As(tt.err, &validationErr) {
				t.Error("expected error to be ValidationError type")
			}
			if IsContractError(tt.err) {
				t.Error("validation errors are not contract errors")
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
	base := errors.New("base")
	wrapped := WrapError(base, "resolving %s", "greet")
	if wrapped.Error() != "resolving greet: base" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("errors.Is should find the base error")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped canceled", fmt.Errorf("dispatch: %w", context.Canceled), true},
		{"other", errors.New("other"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodeAndKind(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{"nil", nil, ExitSuccess, "success"},
		{"config", NewConfigError("bad"), ExitErrorConfig, "failure"},
		{"timeout", TimeoutError{Operation: "x", Limit: time.Second}, ExitErrorTimeout, "failure"},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout, "canceled"},
		{"canceled", context.Canceled, ExitErrorCanceled, "canceled"},
		{"validation", ValidationError{Field: "f", Message: "m"}, ExitErrorValidation, "validation"},
		{"resolution", ResolutionError{Kind: KindUseCase, ID: "x"}, ExitErrorContract, "resolution"},
		{"entry point", EntryPointError{UseCase: "x", Reason: EntryPointMissing}, ExitErrorContract, "entry_point"},
		{"argument", ArgumentError{Key: "k"}, ExitErrorContract, "argument"},
		{"consistency", ConsistencyError{Reason: MissingHandler}, ExitErrorContract, "consistency"},
		{"type mismatch", TypeMismatchError{}, ExitErrorContract, "type_mismatch"},
		{"state", StateError{Op: "dispatch", State: "failed"}, ExitErrorContract, "state"},
		{"generic", errors.New("boom"), ExitErrorGeneric, "failure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.code {
				t.Errorf("ExitCode() = %d, want %d", got, tt.code)
			}
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf() = %q, want %q", got, tt.kind)
			}
		})
	}
}
