package staleness

import (
	"time"
)

// FieldChange is a single field delta inside a change event. Values are
// opaque; only the field name matters for exclusion filtering.
type FieldChange struct {
	Field string
	From  string
	To    string
}

// ChangeEvent is one timestamped, single-actor batch of field modifications
// on an issue, as delivered by the tracker's changelog. Actor may be empty
// for system-generated events.
type ChangeEvent struct {
	Timestamp time.Time
	Actor     string
	Items     []FieldChange
}

// Record is a normalized per-field change: one Record per field touched,
// even when several fields changed in the same event.
type Record struct {
	Timestamp time.Time
	Actor     string
	Field     string
}

// Rules holds the exclusion rules and date boundaries for one evaluation.
// It is a plain immutable value; callers construct it once and pass it
// explicitly so the evaluation stays pure.
type Rules struct {
	fields map[string]struct{}
	actors map[string]struct{}

	// Since and Before classify the result: an issue is included when
	// (Since is zero or last meaningful >= Since) and (Before is zero or
	// last meaningful < Before). Both optional and independent.
	Since  time.Time
	Before time.Time

	// Trace populates Evaluation.Trace with a per-record decision log.
	// Purely observational; it never affects the computed result.
	Trace bool
}

// NewRules builds Rules from field names and actor identities to exclude.
// Matching is exact and case-sensitive, against names as they literally
// appear in the change history. An empty actor string is a matchable
// identity: excluding "" excludes system-generated events.
func NewRules(excludeFields, excludeActors []string) Rules {
	r := Rules{
		fields: make(map[string]struct{}, len(excludeFields)),
		actors: make(map[string]struct{}, len(excludeActors)),
	}
	for _, f := range excludeFields {
		r.fields[f] = struct{}{}
	}
	for _, a := range excludeActors {
		r.actors[a] = struct{}{}
	}
	return r
}

// ExcludesField reports whether changes to the named field are ignored.
func (r Rules) ExcludesField(field string) bool {
	_, ok := r.fields[field]
	return ok
}

// ExcludesActor reports whether changes by the given actor are ignored.
func (r Rules) ExcludesActor(actor string) bool {
	_, ok := r.actors[actor]
	return ok
}

// Decision reasons recorded in an evaluation trace.
const (
	ReasonIncluded      = "included"
	ReasonExcludedActor = "excluded-actor"
	ReasonExcludedField = "excluded-field"
)

// Decision records how one normalized change was treated during evaluation.
type Decision struct {
	Record   Record
	Included bool
	Reason   string
}

// Evaluation is the result of evaluating one issue's change history.
type Evaluation struct {
	Key            string
	Created        time.Time
	LastMeaningful time.Time

	// Included reports whether LastMeaningful falls inside the rules'
	// since/before window.
	Included bool

	// Trace is only populated when Rules.Trace is set.
	Trace []Decision
}
