// Package catalog holds the use cases and request handlers shipped with
// flowctl. Register installs them in a registry container under stable
// identifiers.
package catalog
