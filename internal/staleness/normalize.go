package staleness

import (
	"sort"
)

// Flatten normalizes a raw change history into a flat, chronologically
// ordered sequence of per-field records. The tracker groups several field
// deltas under one timestamped event with one actor; exclusion filtering
// operates at field granularity, so each delta becomes its own Record
// carrying the containing event's timestamp and actor.
//
// Records are sorted ascending by timestamp; ties keep the original event
// order. Events with no field deltas (link or attachment system events not
// modeled as fields) are dropped. A missing actor stays an empty string,
// which only matches a rule that explicitly excludes the empty identity.
func Flatten(events []ChangeEvent) []Record {
	var records []Record
	for _, ev := range events {
		for _, item := range ev.Items {
			records = append(records, Record{
				Timestamp: ev.Timestamp,
				Actor:     ev.Actor,
				Field:     item.Field,
			})
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records
}
