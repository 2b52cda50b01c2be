package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is the default settings file name.
const DefaultSettingsFile = ".phishscan"

// ErrSettingsNotFound is returned when the settings file does not exist.
var ErrSettingsNotFound = errors.New("settings file not found")

// Settings holds optional scanner overrides loaded from the .phishscan
// YAML file. Zero values mean "keep the flag or default value".
type Settings struct {
	// UserAgent overrides the User-Agent header for content fetches.
	UserAgent string `yaml:"user_agent,omitempty"`

	// BatchSize overrides the number of concurrent analyses.
	BatchSize int `yaml:"batch_size,omitempty"`

	// TLSTimeout overrides the TLS handshake timeout.
	TLSTimeout time.Duration `yaml:"tls_timeout,omitempty"`

	// FetchTimeout overrides the page fetch timeout.
	FetchTimeout time.Duration `yaml:"fetch_timeout,omitempty"`

	// ClassifierTimeout overrides the remote classifier call timeout.
	ClassifierTimeout time.Duration `yaml:"classifier_timeout,omitempty"`

	// WhoisTimeout overrides the registration lookup timeout.
	WhoisTimeout time.Duration `yaml:"whois_timeout,omitempty"`

	// RulesFile overrides the detection rules file path.
	RulesFile string `yaml:"rules_file,omitempty"`

	// ListenAddr overrides the HTTP front-end listen address.
	ListenAddr string `yaml:"listen_addr,omitempty"`
}

// LoadSettingsFile loads scanner settings from a YAML file.
// If the file does not exist, it returns ErrSettingsNotFound; callers
// decide whether that is an error based on whether the path was
// explicitly specified.
func LoadSettingsFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided settings path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindSettingsFile searches for the settings file in the following order:
// 1. If settingsPath is specified, use it directly
// 2. Look for .phishscan in the current directory
// 3. Look for .phishscan in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindSettingsFile(settingsPath string) string {
	if settingsPath != "" {
		if _, err := os.Stat(settingsPath); err == nil {
			return settingsPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdSettings := filepath.Join(cwd, DefaultSettingsFile)
		if _, err := os.Stat(cwdSettings); err == nil {
			return cwdSettings
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeSettings := filepath.Join(home, DefaultSettingsFile)
		if _, err := os.Stat(homeSettings); err == nil {
			return homeSettings
		}
	}

	return ""
}

// Apply copies the non-zero settings onto cfg.
func (s *Settings) Apply(cfg *Config) {
	if s.UserAgent != "" {
		cfg.UserAgent = s.UserAgent
	}
	if s.BatchSize > 0 {
		cfg.BatchSize = s.BatchSize
	}
	if s.TLSTimeout > 0 {
		cfg.TLSTimeout = s.TLSTimeout
	}
	if s.FetchTimeout > 0 {
		cfg.FetchTimeout = s.FetchTimeout
	}
	if s.ClassifierTimeout > 0 {
		cfg.ClassifierTimeout = s.ClassifierTimeout
	}
	if s.WhoisTimeout > 0 {
		cfg.WhoisTimeout = s.WhoisTimeout
	}
	if s.RulesFile != "" {
		cfg.RulesPath = s.RulesFile
	}
	if s.ListenAddr != "" {
		cfg.ListenAddr = s.ListenAddr
	}
}
