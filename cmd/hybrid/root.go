package main

import (
	"github.com/spf13/cobra"

	"hybrid/internal/version"
)

var (
	// dirFlag is the project directory holding .hybrid/config.*
	dirFlag   string
	verbosity int
	quiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "hybrid",
	Short: "hybrid - virtual URL protocol handler",
	Long: `hybrid serves hybrid://<host>/<path> URLs from a sandboxed content directory.
The reserved hosts "about" and "theme" return generated JSON and CSS; every other
host names the first directory of the content tree.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(version.Full())
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", ".", "Project directory containing .hybrid/config")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress log output")
}
