package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLabelCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "label ISSUE-KEY LABEL",
		Short: "Add a label to an issue",
		Long: `Add a label to an issue. Adding a label the issue already carries is a
no-op, so the command is safe to re-run.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, label := args[0], args[1]

			_, client, err := loadTrackerClient(configPath)
			if err != nil {
				return err
			}

			added, err := client.AddLabel(context.Background(), key, label)
			if err != nil {
				return fmt.Errorf("failed to add label: %w", err)
			}

			if added {
				fmt.Printf("Label %q added to %s\n", label, key)
			} else {
				fmt.Printf("Issue %s already carries label %q\n", key, label)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/jirafewer/config.yaml)")
	return cmd
}
