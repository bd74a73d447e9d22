package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"hybrid/internal/protocol"
)

var fetchHeadersOnly bool

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Dispatch one virtual URL and print the response",
	Long: `Dispatch a single hybrid:// URL through the protocol handler and print the
status line, the headers in name order and the body.

Examples:
  hybrid fetch hybrid://about/
  hybrid fetch hybrid://theme/vars.css
  hybrid fetch --head hybrid://welcome/`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVar(&fetchHeadersOnly, "head", false, "Print status and headers only")
}

func runFetch(cmd *cobra.Command, args []string) error {
	a := mustNewApp()
	defer a.Close()

	resp, err := a.dispatcher.Handle(context.Background(), protocol.Request{URL: args[0]})
	if err != nil {
		return err
	}
	return writeResponse(cmd.OutOrStdout(), resp, fetchHeadersOnly)
}

// writeResponse prints resp in a plain HTTP-like layout and closes its body.
func writeResponse(w io.Writer, resp *protocol.Response, headOnly bool) error {
	fmt.Fprintf(w, "%d\n", resp.StatusCode)

	names := make([]string, 0, len(resp.Headers))
	for name := range resp.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s: %s\n", name, resp.Headers[name])
	}

	if headOnly {
		return resp.Close()
	}
	fmt.Fprintln(w)
	_, err := resp.WriteTo(w)
	return err
}
