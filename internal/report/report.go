// Package report renders staleness evaluation results as a table, JSON or
// CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/teemow/jirafewer/internal/jira"
	"github.com/teemow/jirafewer/internal/staleness"
)

// Format selects the output rendering.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON, FormatCSV:
		return Format(s), nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (table, json, csv)", s)
	}
}

// Row is one reported issue.
type Row struct {
	Key            string    `json:"key"`
	Summary        string    `json:"summary"`
	Status         string    `json:"status"`
	Assignee       string    `json:"assignee"`
	Created        time.Time `json:"created"`
	LastMeaningful time.Time `json:"lastMeaningful"`
	AgeDays        int       `json:"ageDays"`
	URL            string    `json:"url,omitempty"`
}

// NewRow combines an issue with its evaluation. The age is the number of
// whole days between the last meaningful update and now.
func NewRow(issue jira.Issue, ev staleness.Evaluation, url string, now time.Time) Row {
	age := int(now.Sub(ev.LastMeaningful).Hours() / 24)
	if age < 0 {
		age = 0
	}
	return Row{
		Key:            issue.Key,
		Summary:        issue.Summary,
		Status:         issue.Status,
		Assignee:       issue.Assignee,
		Created:        issue.Created,
		LastMeaningful: ev.LastMeaningful,
		AgeDays:        age,
		URL:            url,
	}
}

// Write renders the rows in the given format.
func Write(w io.Writer, format Format, rows []Row) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatTable, "":
		return writeTable(w, rows)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTable(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No matching issues.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLAST UPDATE\tAGE\tSTATUS\tASSIGNEE\tSUMMARY")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%dd\t%s\t%s\t%s\n",
			row.Key,
			row.LastMeaningful.Format("2006-01-02"),
			row.AgeDays,
			row.Status,
			row.Assignee,
			row.Summary,
		)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "last_meaningful", "age_days", "status", "assignee", "summary", "url"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Key,
			row.LastMeaningful.Format(time.RFC3339),
			strconv.Itoa(row.AgeDays),
			row.Status,
			row.Assignee,
			row.Summary,
			row.URL,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrace renders the per-change decisions of one evaluation, for
// debugging exclusion rules.
func WriteTrace(w io.Writer, ev staleness.Evaluation) error {
	fmt.Fprintf(w, "%s: last meaningful update %s\n", ev.Key, ev.LastMeaningful.Format(time.RFC3339))
	if len(ev.Trace) == 0 {
		_, err := fmt.Fprintln(w, "  (no recorded changes)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, d := range ev.Trace {
		actor := d.Record.Actor
		if actor == "" {
			actor = "(unknown)"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
			d.Record.Timestamp.Format(time.RFC3339),
			actor,
			d.Record.Field,
			d.Reason,
		)
	}
	return tw.Flush()
}
