// Package cmd implements the command-line interface for jirafewer.
//
// This package provides the following commands:
//   - stale: Find issues whose last meaningful update falls inside a date window
//   - comment: Add a comment to an issue
//   - label: Add a label to an issue
//   - transition: Move an issue through a workflow transition
//   - fields: List the tracker's field definitions
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The stale command is the default command when no subcommand is specified.
package cmd
