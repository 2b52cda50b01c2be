package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. Extractor timeouts follow the original
// detector behavior: generous enough for slow hosts, bounded so that one
// stalled dependency cannot stall the whole analysis.
const (
	// DefaultTLSTimeout bounds the TLS handshake against the target host.
	DefaultTLSTimeout = 10 * time.Second

	// DefaultFetchTimeout bounds the page content GET request.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultClassifierTimeout bounds the remote classifier POST call.
	// It is deliberately shorter than the extractor timeouts: when the
	// remote model is slow, the rule-based fallback takes over.
	DefaultClassifierTimeout = 5 * time.Second

	// DefaultWhoisTimeout bounds the domain registration lookup.
	DefaultWhoisTimeout = 10 * time.Second

	// DefaultBatchSize is the number of concurrent URL analyses when
	// scanning multiple targets.
	DefaultBatchSize = 10

	// DefaultUserAgent is sent with content fetches. A browser user agent
	// avoids trivially different responses served to obvious scanners.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// DefaultMaxBodySize limits the response body size read during content
	// analysis. 5MB covers normal HTML pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultRulesFile is the detection rules file created with defaults
	// when absent.
	DefaultRulesFile = "detector_config.json"

	// DefaultResultsFile is where the scan command writes all results.
	DefaultResultsFile = "detection_results.json"

	// DefaultListenAddr is the HTTP front-end listen address.
	DefaultListenAddr = ":8000"

	// AppName is the application name used for XDG directory paths.
	AppName = "phishscan"
)

// Config holds all configuration options for phishscan.
// It is populated from CLI flags (optionally overridden by a .phishscan
// settings file) and passed explicitly into every component at
// construction. No component reads it as ambient global state, which
// keeps unit tests free to use synthetic rule sets.
type Config struct {
	// RulesPath is the path to the JSON detection rules file.
	// If the file does not exist, defaults are written there and used.
	RulesPath string

	// SettingsPath is the path to the optional .phishscan settings file.
	// If empty, the tool searches the current directory and then the
	// user's home directory.
	SettingsPath string

	// Targets is the list of URLs to analyze.
	Targets []string

	// BatchSize is the number of concurrent analyses when processing
	// multiple targets.
	BatchSize int

	// TLSTimeout is the TLS handshake timeout per host.
	TLSTimeout time.Duration

	// FetchTimeout is the page fetch timeout per URL.
	FetchTimeout time.Duration

	// ClassifierTimeout is the remote classifier call timeout.
	ClassifierTimeout time.Duration

	// WhoisTimeout is the registration lookup timeout per domain.
	WhoisTimeout time.Duration

	// UserAgent is the User-Agent header sent with content fetches.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read
	// during content analysis.
	MaxBodySize int64

	// JSONReport enables JSON report output on stdout instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ResultsFile is the JSON file all analysis results are written to
	// after a scan. Empty disables the results file.
	ResultsFile string

	// CacheDir is the directory for the registration-age cache database.
	// Empty disables caching.
	CacheDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ListenAddr is the HTTP front-end listen address for the serve
	// command.
	ListenAddr string
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so callers must start from this constructor rather than a
// zero struct.
func NewConfig() *Config {
	return &Config{
		RulesPath:         DefaultRulesFile,
		BatchSize:         DefaultBatchSize,
		TLSTimeout:        DefaultTLSTimeout,
		FetchTimeout:      DefaultFetchTimeout,
		ClassifierTimeout: DefaultClassifierTimeout,
		WhoisTimeout:      DefaultWhoisTimeout,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		ResultsFile:       DefaultResultsFile,
		CacheDir:          XDGCacheDir(),
		ListenAddr:        DefaultListenAddr,
	}
}

// XDGDataDir returns the XDG data directory for phishscan.
// On Linux: ~/.local/share/phishscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for phishscan.
// On Linux: ~/.config/phishscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for phishscan.
// On Linux: ~/.cache/phishscan
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid. It is called once after
// CLI parsing, before any analysis begins, and returns the first error
// found.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.TLSTimeout <= 0 || c.FetchTimeout <= 0 || c.ClassifierTimeout <= 0 || c.WhoisTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
