package common

// GetIssueKeyFromArgs extracts the issue key from request arguments.
// Returns an empty string when no issueKey argument is present, which
// is the case for search-style tools that operate on a query instead
// of a single issue.
func GetIssueKeyFromArgs(args map[string]interface{}) string {
	if key, ok := args["issueKey"].(string); ok {
		return key
	}
	return ""
}
