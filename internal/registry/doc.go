// Package registry provides Container, an in-memory component registry that
// maps identifiers to use case and handler instances. Instances may be
// registered directly or built lazily by a factory on first lookup.
package registry
