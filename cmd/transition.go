package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newTransitionCmd() *cobra.Command {
	var (
		configPath string
		list       bool
	)

	cmd := &cobra.Command{
		Use:   "transition ISSUE-KEY [NAME]",
		Short: "Move an issue through a workflow transition",
		Long: `Apply a workflow transition to an issue. The transition name is matched
case-insensitively against the transitions currently available on the
issue. Use --list to see what is available.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			_, client, err := loadTrackerClient(configPath)
			if err != nil {
				return err
			}

			ctx := context.Background()

			if list || len(args) == 1 {
				transitions, err := client.Transitions(ctx, key)
				if err != nil {
					return fmt.Errorf("failed to list transitions: %w", err)
				}
				if len(transitions) == 0 {
					fmt.Printf("No transitions available on %s\n", key)
					return nil
				}
				fmt.Printf("Available transitions on %s:\n", key)
				for _, tr := range transitions {
					fmt.Printf("  %s (id %s)\n", tr.Name, tr.ID)
				}
				return nil
			}

			tr, err := client.TransitionIssue(ctx, key, args[1])
			if err != nil {
				return fmt.Errorf("failed to transition issue: %w", err)
			}

			fmt.Printf("Issue %s transitioned via %q (id %s)\n", key, tr.Name, tr.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/jirafewer/config.yaml)")
	cmd.Flags().BoolVar(&list, "list", false, "List the transitions available on the issue instead of applying one")
	return cmd
}
