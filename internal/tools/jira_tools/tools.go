package jira_tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/jirafewer/internal/instrumentation"
	"github.com/teemow/jirafewer/internal/report"
	"github.com/teemow/jirafewer/internal/server"
	"github.com/teemow/jirafewer/internal/staleness"
	"github.com/teemow/jirafewer/internal/timeparsing"
	"github.com/teemow/jirafewer/internal/tools/common"
)

// splitList parses a comma-separated list argument, trimming whitespace
// and dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// exclusionRules builds the evaluation rules for a request: the
// server-wide exclusion lists extended with the per-request ones, with
// field names additionally resolved against the tracker's field
// definitions. Both the raw names and the resolved identifiers are
// matched, since changelogs record fields under either form.
func exclusionRules(ctx context.Context, sc *server.ServerContext, extraFields, extraUsers []string) (staleness.Rules, error) {
	fields := append(append([]string{}, sc.ExcludeFields()...), extraFields...)
	users := append(append([]string{}, sc.ExcludeUsers()...), extraUsers...)

	if len(fields) > 0 {
		resolver, err := sc.FieldResolver(ctx)
		if err != nil {
			return staleness.Rules{}, err
		}
		resolved, _ := resolver.Resolve(fields)
		fields = append(fields, resolved...)
	}

	return staleness.NewRules(fields, users), nil
}

// RegisterJiraTools registers all tracker tools with the MCP server
func RegisterJiraTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerQueryTools(s, sc); err != nil {
		return fmt.Errorf("failed to register query tools: %w", err)
	}

	// Mutating tools are only available when not in read-only mode
	if !readOnly {
		if err := registerMaintenanceTools(s, sc); err != nil {
			return fmt.Errorf("failed to register maintenance tools: %w", err)
		}
	}

	return nil
}

// registerQueryTools registers the read-only tracker tools
func registerQueryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Stale issues tool
	staleIssuesTool := mcp.NewTool("jira_stale_issues",
		mcp.WithDescription("Find issues whose last meaningful update falls inside a date window, sorted oldest first. Changes to excluded fields or by excluded users do not count as activity."),
		mcp.WithString("jql",
			mcp.Required(),
			mcp.Description("JQL query selecting the candidate issues"),
		),
		mcp.WithString("before",
			mcp.Description("Only include issues last meaningfully updated strictly before this time (RFC3339, a compact duration like '-4w', or natural language like '4 weeks ago')"),
		),
		mcp.WithString("since",
			mcp.Description("Only include issues last meaningfully updated at or after this time (same formats as 'before')"),
		),
		mcp.WithString("excludeFields",
			mcp.Description("Comma-separated field names whose changes are ignored, in addition to the server-wide exclusions"),
		),
		mcp.WithString("excludeUsers",
			mcp.Description("Comma-separated user names whose changes are ignored, in addition to the server-wide exclusions"),
		),
	)

	s.AddTool(staleIssuesTool, common.InstrumentedToolHandlerWithOperation(
		"jira_stale_issues", instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			jql, ok := args["jql"].(string)
			if !ok || jql == "" {
				return mcp.NewToolResultError("jql is required"), nil
			}

			now := time.Now()

			var since, before time.Time
			if s, ok := args["since"].(string); ok && s != "" {
				t, err := timeparsing.Parse(s, now)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Invalid 'since' value: %v", err)), nil
				}
				since = t
			}
			if s, ok := args["before"].(string); ok && s != "" {
				t, err := timeparsing.Parse(s, now)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Invalid 'before' value: %v", err)), nil
				}
				before = t
			}

			var extraFields, extraUsers []string
			if s, ok := args["excludeFields"].(string); ok {
				extraFields = splitList(s)
			}
			if s, ok := args["excludeUsers"].(string); ok {
				extraUsers = splitList(s)
			}

			rules, err := exclusionRules(ctx, sc, extraFields, extraUsers)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve field exclusions: %v", err)), nil
			}
			rules.Since = since
			rules.Before = before

			client := sc.JiraClient()
			issues, err := client.SearchIssues(ctx, jql)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to search issues: %v", err)), nil
			}

			metrics := sc.Metrics()

			byKey := make(map[string]int, len(issues))
			var included []staleness.Evaluation
			for i, issue := range issues {
				byKey[issue.Key] = i

				records := staleness.Flatten(issue.Changelog)
				ev := staleness.Evaluate(issue.Key, issue.Created, records, rules)
				if metrics != nil {
					metrics.RecordIssueEvaluated(ctx, issue.Key, ev.Included)
				}
				if ev.Included {
					included = append(included, ev)
				}
			}

			ranked := staleness.Rank(included)

			rows := make([]report.Row, 0, len(ranked))
			for _, ev := range ranked {
				issue := issues[byKey[ev.Key]]
				rows = append(rows, report.NewRow(issue, ev, client.BrowseURL(ev.Key), now))
			}

			var buf bytes.Buffer
			if err := report.Write(&buf, report.FormatJSON, rows); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to format results: %v", err)), nil
			}

			return mcp.NewToolResultText(buf.String()), nil
		}))

	// List fields tool
	listFieldsTool := mcp.NewTool("jira_list_fields",
		mcp.WithDescription("List the tracker's field definitions, including custom field identifiers"),
	)

	s.AddTool(listFieldsTool, common.InstrumentedToolHandlerWithOperation(
		"jira_list_fields", instrumentation.OperationFields, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			fields, err := sc.JiraClient().Fields(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list fields: %v", err)), nil
			}

			result, _ := json.MarshalIndent(fields, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	return nil
}

// registerMaintenanceTools registers tools that mutate tracker state
func registerMaintenanceTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Add comment tool
	addCommentTool := mcp.NewTool("jira_add_comment",
		mcp.WithDescription("Add a comment to an issue"),
		mcp.WithString("issueKey",
			mcp.Required(),
			mcp.Description("The key of the issue to comment on (e.g. PROJ-123)"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("The comment text"),
		),
	)

	s.AddTool(addCommentTool, common.InstrumentedToolHandlerWithOperation(
		"jira_add_comment", instrumentation.OperationComment, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			issueKey := common.GetIssueKeyFromArgs(args)
			if issueKey == "" {
				return mcp.NewToolResultError("issueKey is required"), nil
			}

			body, ok := args["body"].(string)
			if !ok || body == "" {
				return mcp.NewToolResultError("body is required"), nil
			}

			if err := sc.JiraClient().AddComment(ctx, issueKey, body); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to add comment: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Comment added to %s", issueKey)), nil
		}))

	// Add label tool
	addLabelTool := mcp.NewTool("jira_add_label",
		mcp.WithDescription("Add a label to an issue. Adding a label the issue already carries is a no-op."),
		mcp.WithString("issueKey",
			mcp.Required(),
			mcp.Description("The key of the issue to label (e.g. PROJ-123)"),
		),
		mcp.WithString("label",
			mcp.Required(),
			mcp.Description("The label to add"),
		),
	)

	s.AddTool(addLabelTool, common.InstrumentedToolHandlerWithOperation(
		"jira_add_label", instrumentation.OperationLabel, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			issueKey := common.GetIssueKeyFromArgs(args)
			if issueKey == "" {
				return mcp.NewToolResultError("issueKey is required"), nil
			}

			label, ok := args["label"].(string)
			if !ok || label == "" {
				return mcp.NewToolResultError("label is required"), nil
			}

			added, err := sc.JiraClient().AddLabel(ctx, issueKey, label)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to add label: %v", err)), nil
			}

			if !added {
				return mcp.NewToolResultText(fmt.Sprintf("Issue %s already carries label %q", issueKey, label)), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("Label %q added to %s", label, issueKey)), nil
		}))

	// Transition issue tool
	transitionTool := mcp.NewTool("jira_transition_issue",
		mcp.WithDescription("Move an issue through a workflow transition. The transition name is matched case-insensitively against the transitions currently available on the issue."),
		mcp.WithString("issueKey",
			mcp.Required(),
			mcp.Description("The key of the issue to transition (e.g. PROJ-123)"),
		),
		mcp.WithString("transition",
			mcp.Required(),
			mcp.Description("The name of the workflow transition to apply (e.g. 'Close Issue')"),
		),
	)

	s.AddTool(transitionTool, common.InstrumentedToolHandlerWithOperation(
		"jira_transition_issue", instrumentation.OperationTransition, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			issueKey := common.GetIssueKeyFromArgs(args)
			if issueKey == "" {
				return mcp.NewToolResultError("issueKey is required"), nil
			}

			name, ok := args["transition"].(string)
			if !ok || name == "" {
				return mcp.NewToolResultError("transition is required"), nil
			}

			tr, err := sc.JiraClient().TransitionIssue(ctx, issueKey, name)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to transition issue: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Issue %s transitioned via %q (id %s)", issueKey, tr.Name, tr.ID)), nil
		}))

	return nil
}
