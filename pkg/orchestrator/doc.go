// Package orchestrator wires the fixture builder → value overrides → theme
// resolution → renderer pipeline behind a single entry point shared by the
// page host and the CLI.
package orchestrator
