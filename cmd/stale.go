package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/jirafewer/internal/config"
	"github.com/teemow/jirafewer/internal/jira"
	"github.com/teemow/jirafewer/internal/report"
	"github.com/teemow/jirafewer/internal/staleness"
	"github.com/teemow/jirafewer/internal/timeparsing"
)

// loadTrackerClient loads the configuration and builds a tracker client
// from it. Shared by every tracker-facing command.
func loadTrackerClient(configPath string) (*config.Config, *jira.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ValidateConnection(); err != nil {
		return nil, nil, err
	}

	client, err := jira.NewClient(cfg.BaseURL, cfg.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracker client: %w", err)
	}
	client.SetPageSize(cfg.MaxResults)

	return cfg, client, nil
}

// resolveExclusions extends the configured field exclusions with the
// tracker's resolved field identifiers, since changelogs record fields
// under either the display name or the internal id. Resolution failures
// degrade to raw-name matching.
func resolveExclusions(ctx context.Context, client *jira.Client, fields []string) []string {
	if len(fields) == 0 {
		return fields
	}

	defs, err := client.Fields(ctx)
	if err != nil {
		log.Printf("Warning: could not fetch field definitions, matching raw names only: %v", err)
		return fields
	}

	resolver := jira.NewFieldResolver(defs)
	resolved, unresolved := resolver.Resolve(fields)
	for _, name := range unresolved {
		log.Printf("Warning: field %q not found in tracker field definitions", name)
	}

	return append(fields, resolved...)
}

func newStaleCmd() *cobra.Command {
	var (
		configPath    string
		jql           string
		sinceExpr     string
		beforeExpr    string
		excludeFields []string
		excludeUsers  []string
		format        string
		trace         bool
	)

	cmd := &cobra.Command{
		Use:   "stale",
		Short: "Find issues whose last meaningful update falls inside a date window",
		Long: `Search the tracker with a JQL query and evaluate each issue's change
history. Changes to excluded fields or by excluded users do not count as
activity; an issue with no surviving changes falls back to its creation
time. Matching issues are printed oldest first.

Date boundaries accept RFC3339 timestamps, date-only values (2024-01-31),
compact durations relative to now (-4w, -30d), and natural language
("4 weeks ago"). The --before boundary is exclusive, --since inclusive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := loadTrackerClient(configPath)
			if err != nil {
				return err
			}

			if jql == "" {
				jql = cfg.JQL
			}
			if jql == "" {
				return fmt.Errorf("no JQL query given (use --jql or set jira.jql in the config)")
			}
			if format == "" {
				format = cfg.Format
			}
			outFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			now := time.Now()

			var since, before time.Time
			if sinceExpr != "" {
				if since, err = timeparsing.Parse(sinceExpr, now); err != nil {
					return fmt.Errorf("invalid --since value: %w", err)
				}
			}
			if beforeExpr != "" {
				if before, err = timeparsing.Parse(beforeExpr, now); err != nil {
					return fmt.Errorf("invalid --before value: %w", err)
				}
			}

			ctx := context.Background()

			fields := append(append([]string{}, cfg.ExcludeFields...), excludeFields...)
			users := append(append([]string{}, cfg.ExcludeUsers...), excludeUsers...)
			fields = resolveExclusions(ctx, client, fields)

			rules := staleness.NewRules(fields, users)
			rules.Since = since
			rules.Before = before
			rules.Trace = trace

			issues, err := client.SearchIssues(ctx, jql)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			byKey := make(map[string]int, len(issues))
			seenActors := make(map[string]struct{})
			var included []staleness.Evaluation
			for i, issue := range issues {
				byKey[issue.Key] = i

				records := staleness.Flatten(issue.Changelog)
				for _, rec := range records {
					seenActors[rec.Actor] = struct{}{}
				}
				ev := staleness.Evaluate(issue.Key, issue.Created, records, rules)
				if ev.Included {
					included = append(included, ev)
				}
			}

			for _, user := range users {
				if _, ok := seenActors[user]; !ok {
					log.Printf("Warning: excluded user %q matched no changes", user)
				}
			}

			ranked := staleness.Rank(included)

			rows := make([]report.Row, 0, len(ranked))
			for _, ev := range ranked {
				issue := issues[byKey[ev.Key]]
				rows = append(rows, report.NewRow(issue, ev, client.BrowseURL(ev.Key), now))
			}

			if err := report.Write(os.Stdout, outFormat, rows); err != nil {
				return err
			}

			if trace {
				for _, ev := range ranked {
					fmt.Println()
					if err := report.WriteTrace(os.Stdout, ev); err != nil {
						return err
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/jirafewer/config.yaml)")
	cmd.Flags().StringVar(&jql, "jql", "", "JQL query selecting the candidate issues")
	cmd.Flags().StringVar(&sinceExpr, "since", "", "Only include issues last meaningfully updated at or after this time")
	cmd.Flags().StringVar(&beforeExpr, "before", "", "Only include issues last meaningfully updated strictly before this time")
	cmd.Flags().StringSliceVar(&excludeFields, "exclude-field", nil, "Field name whose changes are ignored (repeatable), in addition to the config")
	cmd.Flags().StringSliceVar(&excludeUsers, "exclude-user", nil, "User whose changes are ignored (repeatable), in addition to the config")
	cmd.Flags().StringVar(&format, "format", "", "Output format: table, json or csv (default: table)")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print a per-change decision log for every matching issue")

	return cmd
}
