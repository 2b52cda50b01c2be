package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/database"
	"github.com/phishscan/phishscan/internal/detector"
	"github.com/phishscan/phishscan/internal/log"
	"github.com/phishscan/phishscan/internal/model"
	"github.com/phishscan/phishscan/internal/registration"
	"github.com/phishscan/phishscan/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <url> [<url>...]",
		Short: "Analyze URLs for phishing indicators",
		Long: `Scan analyzes one or more URLs for phishing indicators.

For each URL it collects:
- URL structure signals (IP hosts, suspicious patterns, deep subdomains)
- TLS certificate state (validity, self-signed chains, expiry)
- Page content signals (urgent language, password forms, external links)
- Domain registration age via WHOIS

Each URL is scored in [0.0, 1.0] and classified LOW, MEDIUM, or HIGH.
A machine-readable copy of the results is always written alongside the
report (see --results-file).

Examples:
  # Analyze a single URL
  phishscan scan https://example.com/login

  # Analyze several URLs concurrently
  phishscan scan https://a.test https://b.test https://c.test

  # Output JSON report to a file
  phishscan scan --json -o report.json https://example.com

  # Use custom detection rules
  phishscan scan -c myrules.json https://example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Detection rules and settings
	cmd.Flags().StringP("rules", "c", config.DefaultRulesFile,
		"Detection rules file path (created with defaults if missing)")
	cmd.Flags().String("settings", "",
		"Settings file path (default: .phishscan in current or home directory)")

	// Scan behavior flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses")
	cmd.Flags().DurationP("timeout", "t", 0,
		"Override all network timeouts (TLS, fetch, WHOIS, classifier)")
	cmd.Flags().Bool("no-cache", false,
		"Disable the registration age cache")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().StringP("results-file", "r", config.DefaultResultsFile,
		"Write machine-readable results to this path (empty to skip)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.RulesPath, err = cmd.Flags().GetString("rules")
	if err != nil {
		return nil, err
	}

	cfg.SettingsPath, err = cmd.Flags().GetString("settings")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		cfg.TLSTimeout = timeout
		cfg.FetchTimeout = timeout
		cfg.WhoisTimeout = timeout
		cfg.ClassifierTimeout = timeout
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}
	if noCache {
		cfg.CacheDir = ""
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ResultsFile, err = cmd.Flags().GetString("results-file")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Targets = args

	// Settings file overrides.
	// If the user explicitly specified a settings file, error if not found.
	explicitSettings := cfg.SettingsPath != ""
	settingsPath := config.FindSettingsFile(cfg.SettingsPath)
	if settingsPath != "" {
		settings, err := config.LoadSettingsFile(settingsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings file %s: %w", settingsPath, err)
		}
		settings.Apply(cfg)
	} else if explicitSettings {
		return nil, fmt.Errorf("settings file not found: %s", cfg.SettingsPath)
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Submitted URLs may embed credentials, so the redacting handler is
// always used.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if len(cfg.Targets) == 0 {
		return fmt.Errorf("%w (specify one or more URLs as arguments)", config.ErrNoTarget)
	}

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to load detection rules: %w", err)
	}

	logger.Info("starting scan",
		"targets", cfg.Targets,
		"batchSize", cfg.BatchSize,
		"rules", cfg.RulesPath,
	)

	// Open the registration age cache unless disabled
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
			logger.Info("registration cache opened", "path", ageCache.Path())
		}
	}

	d := detector.Default(cfg, rules, cache, logger)

	var results []*model.AnalysisResult
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		results, err = runBatchScan(ctx, cfg, d, logger)
	} else {
		results, err = runSequentialScan(ctx, cfg, d, logger)
	}
	if err != nil {
		return err
	}

	if err := outputReport(cfg, results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.ResultsFile != "" {
		if err := writeResultsFile(cfg.ResultsFile, results); err != nil {
			return fmt.Errorf("failed to write results file: %w", err)
		}
		fmt.Printf("Results written to %s\n", cfg.ResultsFile)
	}

	return nil
}

// runSequentialScan analyzes targets one at a time.
func runSequentialScan(ctx context.Context, cfg *config.Config, d *detector.Detector, logger *slog.Logger) ([]*model.AnalysisResult, error) {
	results := make([]*model.AnalysisResult, 0, len(cfg.Targets))

	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		fmt.Printf("Analyzing %s...\n", target)
		start := time.Now()

		result, err := d.Analyze(ctx, target)
		if err != nil {
			logger.Error("analysis failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %v\n", target, err)
			results = append(results, nil)
			continue
		}

		fmt.Printf("Analysis completed in %s\n\n", time.Since(start).Round(time.Millisecond))
		results = append(results, result)
	}

	return results, nil
}

// runBatchScan analyzes multiple targets concurrently.
func runBatchScan(ctx context.Context, cfg *config.Config, d *detector.Detector, logger *slog.Logger) ([]*model.AnalysisResult, error) {
	fmt.Printf("Starting batch analysis of %d URLs (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	start := time.Now()

	bp := detector.NewBatchProcessor(d,
		detector.WithConcurrency(cfg.BatchSize),
		detector.WithBatchLogger(logger),
	)

	results, err := bp.ProcessBatch(ctx, cfg.Targets)
	if err != nil {
		return results, err
	}

	fmt.Printf("Batch analysis completed in %s\n\n", time.Since(start).Round(time.Millisecond))
	return results, nil
}

// outputReport renders the results in the configured format.
func outputReport(cfg *config.Config, results []*model.AnalysisResult) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(results)
	return err
}

// writeResultsFile writes the raw results as a JSON array for downstream
// tooling. Failed analyses are skipped.
func writeResultsFile(path string, results []*model.AnalysisResult) error {
	completed := make([]*model.AnalysisResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			completed = append(completed, r)
		}
	}

	data, err := json.MarshalIndent(completed, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(path, data, 0600)
}
