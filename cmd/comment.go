package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCommentCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "comment ISSUE-KEY TEXT",
		Short: "Add a comment to an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, body := args[0], args[1]

			_, client, err := loadTrackerClient(configPath)
			if err != nil {
				return err
			}

			if err := client.AddComment(context.Background(), key, body); err != nil {
				return fmt.Errorf("failed to add comment: %w", err)
			}

			fmt.Printf("Comment added to %s\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/jirafewer/config.yaml)")
	return cmd
}
