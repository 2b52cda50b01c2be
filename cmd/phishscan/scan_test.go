package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phishscan/phishscan/internal/config"
)

// newScanCmdForTest creates the scan command with flags parsed from args.
func newScanCmdForTest(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()

	cmd := NewScanCmd()
	root := NewRootCmd()
	root.AddCommand(cmd)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("flag parse failed: %v", err)
	}
	return buildConfig(cmd, cmd.Flags().Args())
}

// TestBuildConfigDefaults tests the configuration built from defaults.
func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := newScanCmdForTest(t, "https://example.com")
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}

	if cfg.RulesPath != config.DefaultRulesFile {
		t.Errorf("RulesPath = %q", cfg.RulesPath)
	}
	if cfg.BatchSize != config.DefaultBatchSize {
		t.Errorf("BatchSize = %d", cfg.BatchSize)
	}
	if cfg.TLSTimeout != config.DefaultTLSTimeout {
		t.Errorf("TLSTimeout = %v", cfg.TLSTimeout)
	}
	if cfg.ResultsFile != config.DefaultResultsFile {
		t.Errorf("ResultsFile = %q", cfg.ResultsFile)
	}
	if len(cfg.Targets) != 1 || cfg.Targets[0] != "https://example.com" {
		t.Errorf("Targets = %v", cfg.Targets)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// TestBuildConfigTimeoutOverride tests that --timeout overrides every
// network timeout at once.
func TestBuildConfigTimeoutOverride(t *testing.T) {
	cfg, err := newScanCmdForTest(t, "-t", "3s", "https://example.com")
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}

	for name, got := range map[string]time.Duration{
		"TLSTimeout":        cfg.TLSTimeout,
		"FetchTimeout":      cfg.FetchTimeout,
		"WhoisTimeout":      cfg.WhoisTimeout,
		"ClassifierTimeout": cfg.ClassifierTimeout,
	} {
		if got != 3*time.Second {
			t.Errorf("%s = %v, expected 3s", name, got)
		}
	}
}

// TestBuildConfigNoCache tests that --no-cache clears the cache directory.
func TestBuildConfigNoCache(t *testing.T) {
	cfg, err := newScanCmdForTest(t, "--no-cache", "https://example.com")
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}
	if cfg.CacheDir != "" {
		t.Errorf("CacheDir = %q, expected empty", cfg.CacheDir)
	}
}

// TestBuildConfigConflictingFormats tests that --json and --markdown
// together fail validation.
func TestBuildConfigConflictingFormats(t *testing.T) {
	cfg, err := newScanCmdForTest(t, "-j", "-m", "https://example.com")
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("conflicting report formats should fail validation")
	}
}

// TestBuildConfigMissingSettingsFile tests that an explicit but absent
// settings file is an error.
func TestBuildConfigMissingSettingsFile(t *testing.T) {
	_, err := newScanCmdForTest(t,
		"--settings", filepath.Join(t.TempDir(), "nope.yaml"),
		"https://example.com")
	if err == nil {
		t.Error("explicit missing settings file should fail")
	}
}

// TestBuildConfigAppliesSettings tests that settings file values override
// flag defaults.
func TestBuildConfigAppliesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	settings := "user_agent: test-agent\nbatch_size: 3\n"
	if err := os.WriteFile(path, []byte(settings), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := newScanCmdForTest(t, "--settings", path, "https://example.com")
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}
	if cfg.UserAgent != "test-agent" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.BatchSize != 3 {
		t.Errorf("BatchSize = %d, expected 3", cfg.BatchSize)
	}
}
