package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hybrid/internal/protocol"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Show which file a logical path resolves to",
	Long: `Run the rewrite rules for a logical path (host/path, without scheme) against
the content store and print the winning rule and file.

Examples:
  hybrid resolve welcome/
  hybrid resolve docs/guide`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	a := mustNewApp()
	defer a.Close()

	return printResolution(cmd.OutOrStdout(), a.dispatcher, args[0])
}

// printResolution writes "<rule> <file>" for the winning candidate.
func printResolution(w io.Writer, d *protocol.Dispatcher, logical string) error {
	m, err := d.Match(context.Background(), logical)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s\n", m.Rule.Name, m.File)
	return nil
}
