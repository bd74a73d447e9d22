package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hybrid/internal/api"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP bridge",
	Long: `Start an HTTP server that forwards GET /<host>/<path> to hybrid://<host>/<path>
and returns the protocol response unchanged. GET / shows the welcome page.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a := mustNewApp()
	defer a.Close()

	if serveHost != "" {
		a.cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		a.cfg.Server.Port = servePort
	}
	addr := a.cfg.ServerAddress()

	server := api.NewServer(addr, a.dispatcher, a.logger, api.ServerConfig{
		Scheme:   a.cfg.Content.Scheme,
		Compress: a.cfg.Server.Compress,
	})

	// Setup graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.OutOrStdout(), "hybrid bridge listening on http://%s\n", addr)
		fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			a.logger.Error("Server error", "error", err.Error())
			return err
		}
	case sig := <-shutdown:
		a.logger.Info("Received shutdown signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			a.logger.Error("Error during shutdown", "error", err.Error())
			return err
		}
	}

	return nil
}
