package jira

import "fmt"

// APIError represents an error that occurred during a tracker API operation
type APIError struct {
	// Op is the operation that failed (e.g., "search", "addComment", "transition")
	Op string

	// Key is the issue key associated with the operation, if any
	Key string

	// StatusCode is the HTTP status returned by the tracker, if the request
	// got that far
	StatusCode int

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *APIError) Error() string {
	switch {
	case e.Key != "" && e.StatusCode != 0:
		return fmt.Sprintf("jira %s (issue: %s, status: %d): %v", e.Op, e.Key, e.StatusCode, e.Err)
	case e.Key != "":
		return fmt.Sprintf("jira %s (issue: %s): %v", e.Op, e.Key, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("jira %s (status: %d): %v", e.Op, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("jira %s: %v", e.Op, e.Err)
	}
}

// Unwrap implements the errors.Unwrap interface
func (e *APIError) Unwrap() error {
	return e.Err
}
