package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/database"
	"github.com/phishscan/phishscan/internal/detector"
	"github.com/phishscan/phishscan/internal/registration"
	"github.com/phishscan/phishscan/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis service",
		Long: `Serve starts an HTTP service exposing the analyzer.

Endpoints:
  POST /analyze  {"url": "..."} - analyze one URL, returns JSON
  GET  /health   - liveness check
  GET  /         - minimal browser form

Examples:
  # Serve on the default address
  phishscan serve

  # Serve on a custom address with custom rules
  phishscan serve --addr :9000 -c myrules.json`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().String("addr", config.DefaultListenAddr, "Listen address")
	cmd.Flags().StringP("rules", "c", config.DefaultRulesFile,
		"Detection rules file path (created with defaults if missing)")
	cmd.Flags().Bool("no-cache", false,
		"Disable the registration age cache")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	var err error
	cfg.ListenAddr, err = cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	cfg.RulesPath, err = cmd.Flags().GetString("rules")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	if noCache {
		cfg.CacheDir = ""
	}
	cfg.Verbose = getVerboseFlag(cmd)

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to load detection rules: %w", err)
	}

	var cache registration.Cache
	if cfg.CacheDir != "" {
		ageCache, err := database.Open(cfg.CacheDir, database.DefaultOptions())
		if err != nil {
			logger.Warn("registration cache unavailable, continuing without it",
				"dir", cfg.CacheDir, "error", err)
		} else {
			defer func() {
				if err := ageCache.Close(); err != nil {
					logger.Warn("failed to close registration cache", "error", err)
				}
			}()
			cache = ageCache
		}
	}

	d := detector.Default(cfg, rules, cache, logger)
	srv := server.New(d,
		server.WithAddr(cfg.ListenAddr),
		server.WithLogger(logger),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, stopping server...")
		cancel()
	}()

	fmt.Printf("Serving on %s\n", cfg.ListenAddr)
	return srv.Run(ctx)
}
