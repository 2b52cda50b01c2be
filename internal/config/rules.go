package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// Rules is the immutable set of detection rules loaded once at startup
// and shared read-only across concurrent analyses.
type Rules struct {
	// SuspiciousPatterns is the ordered list of regular expressions tested
	// against analyzed URLs. Order is preserved in match reporting.
	SuspiciousPatterns []string `json:"suspicious_patterns"`

	// WhitelistDomains is the trusted-domain allowlist. Membership is an
	// exact host match.
	WhitelistDomains []string `json:"whitelist_domains"`

	// AIModelEndpoint is the optional remote classifier URL. Empty means
	// the rule-based classifier is always used.
	AIModelEndpoint string `json:"ai_model_endpoint"`

	// patterns holds the compiled, case-insensitive forms of
	// SuspiciousPatterns in the same order.
	patterns []*regexp.Regexp

	// whitelist is the set form of WhitelistDomains.
	whitelist map[string]struct{}
}

// DefaultRules returns the hard-coded default detection rules.
func DefaultRules() *Rules {
	rules := &Rules{
		SuspiciousPatterns: []string{
			`[0-9]+\.[0-9]+\.[0-9]+\.[0-9]+`, // IP addresses
			`[a-z]+-[a-z]+\.(tk|ml|ga|cf)`,   // Suspicious TLDs
			`secure.*login`,
			`verify.*account`,
		},
		WhitelistDomains: []string{
			"google.com", "facebook.com", "amazon.com",
		},
		AIModelEndpoint: "http://localhost:8000/predict",
	}

	// Default patterns are constants and always compile.
	if err := rules.compile(); err != nil {
		panic(err)
	}
	return rules
}

// LoadRules loads detection rules from the JSON file at path.
// If the file does not exist, the hard-coded defaults are written there
// and returned; this is the only point where the rules file is created.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided rules path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			rules := DefaultRules()
			if err := WriteRules(path, rules); err != nil {
				return nil, fmt.Errorf("failed to persist default rules: %w", err)
			}
			return rules, nil
		}
		return nil, err
	}

	var rules Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	if err := rules.compile(); err != nil {
		return nil, err
	}
	return &rules, nil
}

// WriteRules writes the rules to path as indented JSON.
func WriteRules(path string, rules *Rules) error {
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0600)
}

// compile builds the case-insensitive pattern matchers and the whitelist
// set. It must be called once before the rules are shared.
func (r *Rules) compile() error {
	r.patterns = make([]*regexp.Regexp, 0, len(r.SuspiciousPatterns))
	for _, p := range r.SuspiciousPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return fmt.Errorf("invalid suspicious pattern %q: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}

	r.whitelist = make(map[string]struct{}, len(r.WhitelistDomains))
	for _, d := range r.WhitelistDomains {
		r.whitelist[d] = struct{}{}
	}
	return nil
}

// Patterns returns the compiled suspicious patterns in configuration order.
func (r *Rules) Patterns() []*regexp.Regexp {
	return r.patterns
}

// IsWhitelisted reports whether host is an exact member of the allowlist.
func (r *Rules) IsWhitelisted(host string) bool {
	_, ok := r.whitelist[host]
	return ok
}
