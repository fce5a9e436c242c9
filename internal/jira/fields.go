package jira

import (
	"strings"
)

// standardFields maps common human-friendly labels to the identifiers the
// tracker uses in change histories for built-in fields.
var standardFields = map[string]string{
	"summary":     "summary",
	"description": "description",
	"status":      "status",
	"assignee":    "assignee",
	"reporter":    "reporter",
	"priority":    "priority",
	"resolution":  "resolution",
	"labels":      "labels",
	"comment":     "comment",
	"attachment":  "attachment",
	"worklog":     "worklog",
	"work log":    "worklog",
	"link":        "issuelinks",
}

// FieldResolver converts user-provided field names into the identifiers
// that appear in change histories. The staleness core matches field names
// exactly; this resolution layer is the place where "Story Points" becomes
// "customfield_10001". It is built once from the tracker's field list and
// is immutable afterwards.
type FieldResolver struct {
	mapping map[string]string
}

// NewFieldResolver builds a resolver from tracker field definitions. Both
// the exact field name and its lowercase form are mapped; custom field IDs
// map to themselves so users may pass them directly.
func NewFieldResolver(fields []Field) *FieldResolver {
	mapping := make(map[string]string, 2*len(fields))
	for _, f := range fields {
		mapping[f.Name] = f.ID
		mapping[strings.ToLower(f.Name)] = f.ID
		if f.Custom {
			mapping[f.ID] = f.ID
		}
	}
	return &FieldResolver{mapping: mapping}
}

// Resolve maps the given names to change-history identifiers. Names that
// cannot be resolved are returned separately; they are a warning for the
// caller, never an error, since an exclusion rule that matches nothing is
// simply a no-op.
func (r *FieldResolver) Resolve(names []string) (resolved, unresolved []string) {
	for _, name := range names {
		switch {
		case r.mapping[name] != "":
			resolved = append(resolved, r.mapping[name])
		case r.mapping[strings.ToLower(name)] != "":
			resolved = append(resolved, r.mapping[strings.ToLower(name)])
		case strings.HasPrefix(name, "customfield_"):
			resolved = append(resolved, name)
		case standardFields[strings.ToLower(name)] != "":
			resolved = append(resolved, standardFields[strings.ToLower(name)])
		default:
			unresolved = append(unresolved, name)
		}
	}
	return resolved, unresolved
}
