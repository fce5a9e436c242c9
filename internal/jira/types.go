package jira

import (
	"fmt"
	"time"

	"github.com/teemow/jirafewer/internal/staleness"
)

// Issue represents a tracker issue with its change history
type Issue struct {
	Key       string
	Summary   string
	Status    string
	Assignee  string // display name, "Unassigned" when empty
	Created   time.Time
	Updated   time.Time
	Labels    []string
	Changelog []staleness.ChangeEvent
}

// Transition represents an available workflow transition for an issue
type Transition struct {
	ID   string
	Name string
}

// Field represents a tracker field definition
type Field struct {
	ID     string
	Name   string
	Custom bool
}

// jiraTimeLayout is the timestamp format used by JIRA server REST responses.
// RFC3339 is accepted as a fallback for cloud instances.
const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(jiraTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Wire types for the tracker's REST responses. Only the fields this tool
// reads are modeled.

type searchResponse struct {
	StartAt    int         `json:"startAt"`
	MaxResults int         `json:"maxResults"`
	Total      int         `json:"total"`
	Issues     []issueJSON `json:"issues"`
}

type issueJSON struct {
	Key       string          `json:"key"`
	Fields    issueFieldsJSON `json:"fields"`
	Changelog *changelogJSON  `json:"changelog"`
}

type issueFieldsJSON struct {
	Summary  string      `json:"summary"`
	Status   *statusJSON `json:"status"`
	Assignee *userJSON   `json:"assignee"`
	Created  string      `json:"created"`
	Updated  string      `json:"updated"`
	Labels   []string    `json:"labels"`
}

type statusJSON struct {
	Name string `json:"name"`
}

type userJSON struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type changelogJSON struct {
	StartAt    int           `json:"startAt"`
	MaxResults int           `json:"maxResults"`
	Total      int           `json:"total"`
	Histories  []historyJSON `json:"histories"`
	Values     []historyJSON `json:"values"` // paged changelog endpoint uses "values"
}

type historyJSON struct {
	Created string     `json:"created"`
	Author  *userJSON  `json:"author"`
	Items   []itemJSON `json:"items"`
}

type itemJSON struct {
	Field      string `json:"field"`
	FromString string `json:"fromString"`
	ToString   string `json:"toString"`
}

type transitionsResponse struct {
	Transitions []transitionJSON `json:"transitions"`
}

type transitionJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type fieldJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// toIssue converts a wire issue to the domain type. A missing or
// unparseable creation timestamp is a hard error: substituting a default
// time would silently misclassify the issue as stale.
func toIssue(raw issueJSON) (Issue, error) {
	if raw.Fields.Created == "" {
		return Issue{}, fmt.Errorf("issue %s: missing created timestamp", raw.Key)
	}
	created, err := parseTime(raw.Fields.Created)
	if err != nil {
		return Issue{}, fmt.Errorf("issue %s: invalid created timestamp %q: %w", raw.Key, raw.Fields.Created, err)
	}

	issue := Issue{
		Key:      raw.Key,
		Summary:  raw.Fields.Summary,
		Created:  created,
		Assignee: "Unassigned",
		Labels:   raw.Fields.Labels,
	}
	if raw.Fields.Status != nil {
		issue.Status = raw.Fields.Status.Name
	}
	if raw.Fields.Assignee != nil && raw.Fields.Assignee.DisplayName != "" {
		issue.Assignee = raw.Fields.Assignee.DisplayName
	}
	if raw.Fields.Updated != "" {
		updated, err := parseTime(raw.Fields.Updated)
		if err != nil {
			return Issue{}, fmt.Errorf("issue %s: invalid updated timestamp %q: %w", raw.Key, raw.Fields.Updated, err)
		}
		issue.Updated = updated
	}

	if raw.Changelog != nil {
		events, err := toChangeEvents(raw.Key, raw.Changelog.Histories)
		if err != nil {
			return Issue{}, err
		}
		issue.Changelog = events
	}

	return issue, nil
}

// toChangeEvents converts changelog histories. An unparseable event
// timestamp names the issue and the first field of the offending event.
func toChangeEvents(key string, histories []historyJSON) ([]staleness.ChangeEvent, error) {
	events := make([]staleness.ChangeEvent, 0, len(histories))
	for _, h := range histories {
		at, err := parseTime(h.Created)
		if err != nil {
			field := "(none)"
			if len(h.Items) > 0 {
				field = h.Items[0].Field
			}
			return nil, fmt.Errorf("issue %s: invalid changelog timestamp %q (field %s): %w", key, h.Created, field, err)
		}

		ev := staleness.ChangeEvent{Timestamp: at}
		if h.Author != nil {
			// Server instances carry the username; cloud only a display name.
			ev.Actor = h.Author.Name
			if ev.Actor == "" {
				ev.Actor = h.Author.DisplayName
			}
		}
		for _, item := range h.Items {
			ev.Items = append(ev.Items, staleness.FieldChange{
				Field: item.Field,
				From:  item.FromString,
				To:    item.ToString,
			})
		}
		events = append(events, ev)
	}
	return events, nil
}

func toTransitions(raw []transitionJSON) []Transition {
	out := make([]Transition, 0, len(raw))
	for _, t := range raw {
		out = append(out, Transition{ID: t.ID, Name: t.Name})
	}
	return out
}

func toFields(raw []fieldJSON) []Field {
	out := make([]Field, 0, len(raw))
	for _, f := range raw {
		out = append(out, Field{ID: f.ID, Name: f.Name, Custom: f.Custom})
	}
	return out
}
