// Package orchestration dispatches a single use case invocation. It resolves
// the use case and its request handler from a Registry, enforces the
// structural contract between them, and sequences validation,
// normalization, invocation and presentation with fail-fast semantics.
// Business logic and output formatting stay behind the Handler and
// Presenter interfaces.
package orchestration
