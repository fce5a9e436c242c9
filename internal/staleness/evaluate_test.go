package staleness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateEmptyHistory(t *testing.T) {
	created := ts("2024-01-01T00:00:00Z")

	ev := Evaluate("PROJ-1", created, nil, NewRules(nil, nil))

	assert.Equal(t, created, ev.LastMeaningful)
	assert.True(t, ev.Included)
}

func TestEvaluateExcludedFieldFallsBackToCreation(t *testing.T) {
	// Issue created 2024-01-01; one change on 2024-02-01 to field "Comment"
	// by "bot". Excluding "Comment" leaves only the creation time.
	created := ts("2024-01-01T00:00:00Z")
	records := []Record{
		{Timestamp: ts("2024-02-01T00:00:00Z"), Actor: "bot", Field: "Comment"},
	}

	ev := Evaluate("PROJ-1", created, records, NewRules([]string{"Comment"}, nil))
	assert.Equal(t, created, ev.LastMeaningful)

	ev = Evaluate("PROJ-1", created, records, NewRules(nil, nil))
	assert.Equal(t, ts("2024-02-01T00:00:00Z"), ev.LastMeaningful)
}

func TestEvaluateLaterExcludedChangeIgnored(t *testing.T) {
	// A later change to an excluded field must not win over an earlier
	// meaningful one.
	created := ts("2024-01-01T00:00:00Z")
	records := []Record{
		{Timestamp: ts("2024-02-01T00:00:00Z"), Actor: "alice", Field: "Status"},
		{Timestamp: ts("2024-03-01T00:00:00Z"), Actor: "bot", Field: "Comment"},
	}

	ev := Evaluate("PROJ-1", created, records, NewRules([]string{"Comment"}, nil))

	assert.Equal(t, ts("2024-02-01T00:00:00Z"), ev.LastMeaningful)
}

func TestEvaluateExcludedActor(t *testing.T) {
	created := ts("2024-01-01T00:00:00Z")
	records := []Record{
		{Timestamp: ts("2024-02-01T00:00:00Z"), Actor: "automation-bot", Field: "Status"},
		{Timestamp: ts("2024-03-01T00:00:00Z"), Actor: "automation-bot", Field: "Labels"},
	}

	ev := Evaluate("PROJ-1", created, records, NewRules(nil, []string{"automation-bot"}))

	assert.Equal(t, created, ev.LastMeaningful)
}

func TestEvaluateEmptyActorOnlyMatchesExplicitExclusion(t *testing.T) {
	created := ts("2024-01-01T00:00:00Z")
	records := []Record{
		{Timestamp: ts("2024-02-01T00:00:00Z"), Actor: "", Field: "Link"},
	}

	ev := Evaluate("PROJ-1", created, records, NewRules(nil, []string{"bot"}))
	assert.Equal(t, ts("2024-02-01T00:00:00Z"), ev.LastMeaningful)

	ev = Evaluate("PROJ-1", created, records, NewRules(nil, []string{""}))
	assert.Equal(t, created, ev.LastMeaningful)
}

func TestEvaluateOutOfOrderRecords(t *testing.T) {
	// The data source may deliver records out of order; max-tracking must
	// still find the latest qualifying timestamp.
	created := ts("2024-01-01T00:00:00Z")
	records := []Record{
		{Timestamp: ts("2024-04-01T00:00:00Z"), Actor: "alice", Field: "Status"},
		{Timestamp: ts("2024-02-01T00:00:00Z"), Actor: "alice", Field: "Priority"},
	}

	ev := Evaluate("PROJ-1", created, records, NewRules(nil, nil))

	assert.Equal(t, ts("2024-04-01T00:00:00Z"), ev.LastMeaningful)
}

func TestEvaluateClassification(t *testing.T) {
	created := ts("2024-01-01T00:00:00Z")
	change := ts("2024-05-01T00:00:00Z")
	records := []Record{{Timestamp: change, Actor: "alice", Field: "Status"}}

	tests := []struct {
		name   string
		since  time.Time
		before time.Time
		want   bool
	}{
		{name: "no boundaries includes all", want: true},
		{name: "since after last update excludes", since: ts("2024-06-01T00:00:00Z"), want: false},
		{name: "since before last update includes", since: ts("2024-04-01T00:00:00Z"), want: true},
		{name: "since equal to last update includes", since: change, want: true},
		{name: "before after last update includes", before: ts("2024-06-01T00:00:00Z"), want: true},
		{name: "before equal to last update excludes", before: change, want: false},
		{name: "window around last update includes", since: ts("2024-04-01T00:00:00Z"), before: ts("2024-06-01T00:00:00Z"), want: true},
		{name: "window before last update excludes", since: ts("2024-02-01T00:00:00Z"), before: ts("2024-03-01T00:00:00Z"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := NewRules(nil, nil)
			rules.Since = tt.since
			rules.Before = tt.before

			ev := Evaluate("PROJ-1", created, records, rules)
			assert.Equal(t, tt.want, ev.Included)
		})
	}
}

func TestEvaluateTrace(t *testing.T) {
	created := ts("2024-01-01T00:00:00Z")
	records := []Record{
		{Timestamp: ts("2024-02-01T00:00:00Z"), Actor: "bot", Field: "Status"},
		{Timestamp: ts("2024-03-01T00:00:00Z"), Actor: "alice", Field: "Comment"},
		{Timestamp: ts("2024-04-01T00:00:00Z"), Actor: "alice", Field: "Status"},
	}

	rules := NewRules([]string{"Comment"}, []string{"bot"})

	ev := Evaluate("PROJ-1", created, records, rules)
	assert.Nil(t, ev.Trace)

	rules.Trace = true
	traced := Evaluate("PROJ-1", created, records, rules)

	assert.Len(t, traced.Trace, 3)
	assert.Equal(t, ReasonExcludedActor, traced.Trace[0].Reason)
	assert.Equal(t, ReasonExcludedField, traced.Trace[1].Reason)
	assert.Equal(t, ReasonIncluded, traced.Trace[2].Reason)
	assert.True(t, traced.Trace[2].Included)

	// The trace never changes the result.
	assert.Equal(t, ev.LastMeaningful, traced.LastMeaningful)
	assert.Equal(t, ev.Included, traced.Included)
}

func TestEvaluateActorExclusionWinsOverField(t *testing.T) {
	created := ts("2024-01-01T00:00:00Z")
	records := []Record{
		{Timestamp: ts("2024-02-01T00:00:00Z"), Actor: "bot", Field: "Comment"},
	}

	rules := NewRules([]string{"Comment"}, []string{"bot"})
	rules.Trace = true

	ev := Evaluate("PROJ-1", created, records, rules)

	assert.Equal(t, ReasonExcludedActor, ev.Trace[0].Reason)
}
