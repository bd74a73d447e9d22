package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"hybrid/internal/config"
	"hybrid/internal/pages"
	"hybrid/internal/protocol"
	"hybrid/internal/resolve"
	"hybrid/internal/slogutil"
	"hybrid/internal/store"
)

// app bundles what every command needs after startup.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	dispatcher *protocol.Dispatcher
	closer     io.Closer
}

// Close releases the dispatcher and the log file.
func (a *app) Close() error {
	_ = a.dispatcher.Close()
	return a.closer.Close()
}

// newApp loads configuration from dir, sets up logging and builds the dispatcher.
func newApp(dir string, logOut io.Writer) (*app, error) {
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var override *slog.Level
	if verbosity > 0 || quiet {
		level := slogutil.LevelFromVerbosity(verbosity, quiet)
		override = &level
	}
	logger, closer, err := slogutil.FromConfig(cfg.Logging, logOut, override)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	dispatcher, err := buildDispatcher(cfg, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, dispatcher: dispatcher, closer: closer}, nil
}

// mustNewApp returns the app or exits on error.
func mustNewApp() *app {
	a, err := newApp(dirFlag, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}

// openStore returns the configured content directory, or the built-in
// pages when none is set.
func openStore(cfg *config.Config) (resolve.Store, error) {
	if cfg.Content.Root == "" {
		return store.NewFS(pages.FS()), nil
	}
	return store.NewDir(cfg.Path(cfg.Content.Root))
}

// buildDispatcher wires store, manifest and theme into a dispatcher.
func buildDispatcher(cfg *config.Config, logger *slog.Logger) (*protocol.Dispatcher, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	manifest, err := cfg.ResolveManifest()
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	theme, err := cfg.ResolveTheme()
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}

	logger.Debug("Dispatcher configured",
		"root", cfg.Content.Root,
		"version", manifest.Version,
		"themeVars", len(theme),
	)

	return protocol.New(st, protocol.Options{
		CSPOrigin:     cfg.Content.CSPOrigin,
		NotFoundPage:  cfg.Content.NotFoundPage,
		Version:       manifest.Version,
		Dependencies:  manifest.Dependencies,
		AboutPackages: cfg.About.Packages,
		Theme:         theme,
	}, logger)
}
