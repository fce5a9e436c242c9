package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFieldsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the tracker's field definitions",
		Long: `List the tracker's field definitions, including custom field identifiers.
Useful for finding the names to put in exclude.fields.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadTrackerClient(configPath)
			if err != nil {
				return err
			}

			fields, err := client.Fields(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list fields: %w", err)
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCUSTOM")
			for _, f := range fields {
				fmt.Fprintf(tw, "%s\t%s\t%t\n", f.ID, f.Name, f.Custom)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/jirafewer/config.yaml)")
	return cmd
}
