// Package logging provides a unified logging interface for domainflow.
// It abstracts the underlying logging implementation, allowing the
// orchestrator and the CLI to log consistently while supporting multiple
// backends.
package logging
