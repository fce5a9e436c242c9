// Package jira_tools provides MCP tools for working with JIRA issues.
//
// This package implements MCP (Model Context Protocol) tools that wrap the
// tracker client, exposing stale-issue detection and issue maintenance
// operations for AI assistants.
//
// # Available Tools
//
// Querying:
//   - jira_stale_issues: Find issues whose last meaningful update falls
//     inside a date window, sorted oldest first
//   - jira_list_fields: List the tracker's field definitions
//
// Issue Maintenance (disabled in read-only mode):
//   - jira_add_comment: Add a comment to an issue
//   - jira_add_label: Add a label to an issue (idempotent)
//   - jira_transition_issue: Move an issue through a workflow transition
//
// # Staleness Evaluation
//
// jira_stale_issues evaluates each issue's change history against the
// server-wide field and user exclusion lists, optionally extended per
// request. A change to an excluded field or by an excluded user never
// counts as activity; an issue with no surviving changes falls back to
// its creation time.
package jira_tools
