// Package usecase inspects use case instances and describes their entry
// point: which of the two recognized forms they expose (an Execute method,
// or being callable themselves), how many request parameters it takes and
// which type that request must satisfy.
//
// Use cases reach the orchestrator through a registry as untyped values, so
// the shape is checked at runtime. The generic Interactor, Command and Func
// types let use case authors get the same guarantees from the compiler at the
// definition site.
package usecase
