// Package errors provides the structured error type shared by scenariokit
// packages. Every error carries a machine-readable code so callers can branch
// on the failure kind with errors.Is or HasCode instead of matching strings.
package errors
