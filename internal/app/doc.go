// Package app is the flowctl composition root. It wires the configuration,
// the component registry, logging, metrics and the presenters around the
// orchestrator, and exposes them as cobra commands.
package app
