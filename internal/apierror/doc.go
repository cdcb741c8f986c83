// Package apierror provides error inspection capabilities for GitHub REST API errors.
// It centralizes the logic for deciding which failures are transient and safe to
// retry, eliminating the need for string-based error checking throughout the codebase.
package apierror
