// Package logging provides structured logging utilities for the jirafewer application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "jira.search")
//	logger.Info("searching issues",
//	    logging.Status("success"))
//
// # Security Considerations
//
// Tokens are never logged directly; use SanitizeToken when a token must
// appear in diagnostics.
package logging
