package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the jirafewer application
var rootCmd = &cobra.Command{
	Use:   "jirafewer",
	Short: "Finds and maintains stale JIRA issues",
	Long: `jirafewer finds issues whose last meaningful update is older than a
threshold, filtering out changes that do not represent real activity
(rank shuffles, bulk bot edits, sprint rollovers).

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "jirafewer version %s\n" .Version}}`)

	// If no subcommand is provided, run the stale command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "stale")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newStaleCmd())
	rootCmd.AddCommand(newCommentCmd())
	rootCmd.AddCommand(newLabelCmd())
	rootCmd.AddCommand(newTransitionCmd())
	rootCmd.AddCommand(newFieldsCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
