package staleness

import (
	"time"
)

// Evaluate computes the last meaningful update for one issue.
//
// The scan starts from the creation timestamp as the floor and tracks the
// maximum timestamp among records that survive the exclusion rules. Actor
// exclusion is checked before field exclusion. The max-tracking formulation
// is deliberate: the input is normally sorted, but the data source does not
// guarantee ordering, so a conservative recompute is always correct.
//
// If every change is excluded (or the history is empty) the result is
// exactly the creation timestamp. Evaluate is a pure function; evaluating
// the same inputs twice yields identical results.
func Evaluate(key string, created time.Time, records []Record, rules Rules) Evaluation {
	ev := Evaluation{
		Key:            key,
		Created:        created,
		LastMeaningful: created,
	}
	if rules.Trace {
		ev.Trace = make([]Decision, 0, len(records))
	}

	for _, rec := range records {
		switch {
		case rules.ExcludesActor(rec.Actor):
			ev.trace(rec, false, ReasonExcludedActor)
		case rules.ExcludesField(rec.Field):
			ev.trace(rec, false, ReasonExcludedField)
		default:
			if rec.Timestamp.After(ev.LastMeaningful) {
				ev.LastMeaningful = rec.Timestamp
			}
			ev.trace(rec, true, ReasonIncluded)
		}
	}

	ev.Included = classify(ev.LastMeaningful, rules.Since, rules.Before)
	return ev
}

// classify applies the since/before window. Both boundaries are optional
// and independent; the zero time means unset. Since is inclusive, Before
// exclusive.
func classify(last, since, before time.Time) bool {
	if !since.IsZero() && last.Before(since) {
		return false
	}
	if !before.IsZero() && !last.Before(before) {
		return false
	}
	return true
}

func (e *Evaluation) trace(rec Record, included bool, reason string) {
	if e.Trace == nil {
		return
	}
	e.Trace = append(e.Trace, Decision{Record: rec, Included: included, Reason: reason})
}
