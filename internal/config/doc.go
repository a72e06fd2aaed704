// Package config resolves the flowctl runtime configuration.
//
// Values are layered with the following priority, highest first:
//
//  1. command-line flags explicitly set by the user
//  2. DOMAINFLOW_* environment variables
//  3. the TOML configuration file (--config or DOMAINFLOW_CONFIG)
//  4. built-in defaults
package config
