package staleness

import (
	"sort"
	"testing"
	"time"

	"pgregory.net/rapid"
)

var (
	genActor = rapid.SampledFrom([]string{"", "alice", "bob", "automation-bot", "jira-system"})
	genField = rapid.SampledFrom([]string{"Status", "Comment", "Assignee", "Labels", "Rank", "Story Points"})
)

func genRecords(t *rapid.T, base time.Time) []Record {
	n := rapid.IntRange(0, 30).Draw(t, "numRecords")
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		offset := rapid.Int64Range(-1000, 100000).Draw(t, "offsetMinutes")
		records = append(records, Record{
			Timestamp: base.Add(time.Duration(offset) * time.Minute),
			Actor:     genActor.Draw(t, "actor"),
			Field:     genField.Draw(t, "field"),
		})
	}
	return records
}

// Adding a field or actor to the exclusion sets never increases the last
// meaningful update: exclusion only removes candidates.
func TestProperty_ExclusionIsMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		records := genRecords(t, created)

		fields := rapid.SliceOfN(genField, 0, 3).Draw(t, "excludeFields")
		actors := rapid.SliceOfN(genActor, 0, 3).Draw(t, "excludeActors")

		base := Evaluate("PROJ-1", created, records, NewRules(fields, actors))

		extraField := genField.Draw(t, "extraField")
		extraActor := genActor.Draw(t, "extraActor")
		widened := Evaluate("PROJ-1", created, records,
			NewRules(append(fields, extraField), append(actors, extraActor)))

		if widened.LastMeaningful.After(base.LastMeaningful) {
			t.Errorf("widening exclusions increased last meaningful update: %v > %v",
				widened.LastMeaningful, base.LastMeaningful)
		}
	})
}

// The creation timestamp is the floor: no rule set can produce an earlier
// result, and excluding everything yields exactly the creation time.
func TestProperty_CreationIsFloor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		records := genRecords(t, created)

		fields := rapid.SliceOfN(genField, 0, 6).Draw(t, "excludeFields")
		ev := Evaluate("PROJ-1", created, records, NewRules(fields, nil))

		if ev.LastMeaningful.Before(created) {
			t.Errorf("last meaningful update %v precedes creation %v", ev.LastMeaningful, created)
		}

		everything := NewRules(
			[]string{"Status", "Comment", "Assignee", "Labels", "Rank", "Story Points"}, nil)
		all := Evaluate("PROJ-1", created, records, everything)
		if !all.LastMeaningful.Equal(created) {
			t.Errorf("all-excluded evaluation = %v, want creation %v", all.LastMeaningful, created)
		}
	})
}

// Evaluation is a pure function: same inputs, same outputs.
func TestProperty_EvaluateIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		records := genRecords(t, created)
		rules := NewRules(
			rapid.SliceOfN(genField, 0, 3).Draw(t, "excludeFields"),
			rapid.SliceOfN(genActor, 0, 3).Draw(t, "excludeActors"),
		)

		first := Evaluate("PROJ-1", created, records, rules)
		second := Evaluate("PROJ-1", created, records, rules)

		if !first.LastMeaningful.Equal(second.LastMeaningful) || first.Included != second.Included {
			t.Errorf("repeated evaluation diverged: %+v vs %+v", first, second)
		}
	})
}

// Evaluation does not depend on record order.
func TestProperty_EvaluateOrderInsensitive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		records := genRecords(t, created)
		rules := NewRules(
			rapid.SliceOfN(genField, 0, 3).Draw(t, "excludeFields"),
			rapid.SliceOfN(genActor, 0, 3).Draw(t, "excludeActors"),
		)

		shuffled := make([]Record, len(records))
		copy(shuffled, records)
		sort.SliceStable(shuffled, func(i, j int) bool {
			return shuffled[i].Field < shuffled[j].Field
		})

		a := Evaluate("PROJ-1", created, records, rules)
		b := Evaluate("PROJ-1", created, shuffled, rules)

		if !a.LastMeaningful.Equal(b.LastMeaningful) {
			t.Errorf("record order changed the result: %v vs %v", a.LastMeaningful, b.LastMeaningful)
		}
	})
}

// Rank output is sorted ascending and stable for equal timestamps.
func TestProperty_RankSortedAndStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "numEvals")
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		evals := make([]Evaluation, 0, n)
		for i := 0; i < n; i++ {
			// Coarse offsets so timestamp collisions actually happen.
			offset := rapid.IntRange(0, 5).Draw(t, "offsetDays")
			evals = append(evals, Evaluation{
				Key:            string(rune('A' + i)),
				LastMeaningful: base.AddDate(0, 0, offset),
			})
		}

		input := make([]Evaluation, len(evals))
		copy(input, evals)
		ranked := Rank(evals)

		for i := 1; i < len(ranked); i++ {
			if ranked[i].LastMeaningful.Before(ranked[i-1].LastMeaningful) {
				t.Errorf("rank output not ascending at %d", i)
			}
		}

		// Stability: among equal timestamps, input order is preserved.
		pos := make(map[string]int, len(input))
		for i, ev := range input {
			pos[ev.Key] = i
		}
		for i := 1; i < len(ranked); i++ {
			if ranked[i].LastMeaningful.Equal(ranked[i-1].LastMeaningful) &&
				pos[ranked[i].Key] < pos[ranked[i-1].Key] {
				t.Errorf("rank not stable for ties: %s before %s", ranked[i-1].Key, ranked[i].Key)
			}
		}
	})
}
