// Package staleness computes the last meaningful update of tracker issues.
//
// A change to an issue is "meaningful" if it survives the caller's exclusion
// rules: changes to excluded fields (e.g. "Comment", "Rank") and changes made
// by excluded actors (e.g. automation bots) are ignored. The most recent
// surviving change, floored at the issue's creation time, is the issue's last
// meaningful update, which is then classified against optional since/before
// boundaries and used to rank issues oldest-first.
//
// The package is pure computation over already-fetched data: no I/O, no
// shared state, deterministic for a given (creation time, change history,
// rules) triple. Fetching histories from the tracker is the jira package's
// concern.
package staleness
