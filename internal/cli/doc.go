// Package cli renders dispatch results for the terminal and hosts the
// interactive shell.
//
// # Naming Conventions
//
//   - *Presenter types implement orchestration.Presenter and write a single
//     response to an [io.Writer].
//   - Parse* functions turn command-line input into values without
//     performing I/O.
package cli
