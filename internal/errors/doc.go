// Package apperrors defines the structured error types raised while resolving,
// binding and dispatching use cases, allowing callers to tell contract
// violations (entry point shape, arity, type compatibility) apart from
// resolution, argument and configuration failures.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Every contract error matches its sentinel through errors.Is and its concrete
// type through errors.As.
package apperrors
