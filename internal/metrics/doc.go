// Package metrics exposes Prometheus collectors that observe use case
// dispatches.
package metrics
