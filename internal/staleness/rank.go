package staleness

import (
	"sort"
)

// Rank orders evaluations ascending by last meaningful update, oldest first,
// so consumers can page through "most stale first". The sort is stable:
// evaluations with equal timestamps keep their input order.
func Rank(evals []Evaluation) []Evaluation {
	ranked := make([]Evaluation, len(evals))
	copy(ranked, evals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LastMeaningful.Before(ranked[j].LastMeaningful)
	})
	return ranked
}
