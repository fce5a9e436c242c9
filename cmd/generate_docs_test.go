package cmd

import (
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		expected string
	}{
		{
			name:     "stale issues is a query tool",
			tool:     "jira_stale_issues",
			expected: "Query Tools",
		},
		{
			name:     "list fields is a query tool",
			tool:     "jira_list_fields",
			expected: "Query Tools",
		},
		{
			name:     "add comment is a maintenance tool",
			tool:     "jira_add_comment",
			expected: "Maintenance Tools",
		},
		{
			name:     "add label is a maintenance tool",
			tool:     "jira_add_label",
			expected: "Maintenance Tools",
		},
		{
			name:     "transition is a maintenance tool",
			tool:     "jira_transition_issue",
			expected: "Maintenance Tools",
		},
		{
			name:     "unknown tool",
			tool:     "something_else",
			expected: "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getCategoryFromToolName(tt.tool); got != tt.expected {
				t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.tool, got, tt.expected)
			}
		})
	}
}

func TestGenerateToolsMarkdown(t *testing.T) {
	tools := []mcp.Tool{
		mcp.NewTool("jira_stale_issues",
			mcp.WithDescription("Find issues whose last meaningful update falls inside a date window"),
			mcp.WithString("jql",
				mcp.Required(),
				mcp.Description("JQL query selecting the candidate issues"),
			),
			mcp.WithString("before",
				mcp.Description("Upper boundary for the last meaningful update"),
			),
		),
		mcp.NewTool("jira_add_label",
			mcp.WithDescription("Add a label to an issue"),
			mcp.WithString("issueKey",
				mcp.Required(),
				mcp.Description("The key of the issue to label"),
			),
		),
	}

	markdown := generateToolsMarkdown(tools)

	for _, want := range []string{
		"# MCP Tools Reference",
		"## Query Tools",
		"## Maintenance Tools",
		"### jira_stale_issues",
		"### jira_add_label",
		"`jql` (required)",
		"`before` (optional)",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestGenerateToolMarkdownWithoutArguments(t *testing.T) {
	tool := mcp.NewTool("jira_list_fields",
		mcp.WithDescription("List the tracker's field definitions"),
	)

	markdown := generateToolMarkdown(tool)

	if !strings.Contains(markdown, "### jira_list_fields") {
		t.Error("Expected markdown to contain the tool name")
	}
	if strings.Contains(markdown, "**Arguments:**") {
		t.Error("Expected no arguments section for a tool without parameters")
	}
}
