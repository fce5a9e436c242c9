// Package jira provides a client for a JIRA-compatible issue tracker.
//
// This package wraps the tracker's REST API (v2) and provides functionality for:
//   - Searching issues by JQL with their full change history
//   - Adding comments and labels to issues
//   - Transitioning issues through their workflow
//   - Listing tracker fields and resolving human-friendly field names to the
//     identifiers used in change histories
//
// The client authenticates with a personal access token (JIRA_URL and
// JIRA_TOKEN by convention). Paginated endpoints are drained exhaustively:
// a truncated change history would silently corrupt staleness results, so
// SearchIssues follows both search pages and per-issue changelog pages until
// the reported totals are reached.
//
// Transient failures (network errors, 5xx, 429) are retried with exponential
// backoff; everything else fails fast with an *APIError naming the operation
// and issue.
package jira
