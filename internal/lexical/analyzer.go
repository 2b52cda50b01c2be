package lexical

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/phishscan/phishscan/internal/config"
)

// ipHostPattern matches a dotted-quad IP address anywhere in the host.
// Loose on purpose: "192.168.1.1.evil.test" is as suspicious as a bare
// address literal.
var ipHostPattern = regexp.MustCompile(`\d+\.\d+\.\d+\.\d+`)

// Result holds the structural features derived from one URL.
type Result struct {
	// Host is the best-effort host, possibly empty for malformed URLs.
	Host string

	// HasIPHost reports whether Host contains a dotted-quad IP address.
	HasIPHost bool

	// MatchedPatterns lists the suspicious patterns that matched the URL,
	// in configuration order.
	MatchedPatterns []string

	// HostLength is len(Host).
	HostLength int

	// SubdomainCount is the number of dot-separated host labels minus two.
	SubdomainCount int

	// IsWhitelisted reports exact allowlist membership of Host.
	IsWhitelisted bool
}

// Analyzer derives lexical features from URLs using the configured
// detection rules. It is safe for concurrent use: the rules are read-only.
type Analyzer struct {
	rules *config.Rules
}

// NewAnalyzer creates a lexical analyzer bound to the given rules.
func NewAnalyzer(rules *config.Rules) *Analyzer {
	return &Analyzer{rules: rules}
}

// Analyze computes the lexical features for rawURL. It never fails.
//
// Every configured pattern is tested against the full URL, case
// insensitively, with no short-circuit: all matches are reported in
// configuration order. The matched pattern identifier is the pattern's
// source string as configured.
func (a *Analyzer) Analyze(rawURL string) Result {
	host := Host(rawURL)

	matched := make([]string, 0)
	for i, re := range a.rules.Patterns() {
		if re.MatchString(rawURL) {
			matched = append(matched, a.rules.SuspiciousPatterns[i])
		}
	}

	return Result{
		Host:            host,
		HasIPHost:       ipHostPattern.MatchString(host),
		MatchedPatterns: matched,
		HostLength:      len(host),
		SubdomainCount:  subdomainCount(host),
		IsWhitelisted:   a.rules.IsWhitelisted(host),
	}
}

// Host extracts a best-effort host from rawURL without network access.
// Scheme-less inputs like "example.com/login" are retried with an http
// prefix so the host is still recovered. Returns "" when no host can be
// determined.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err == nil && u.Hostname() != "" {
		return u.Hostname()
	}

	u, err = url.Parse("http://" + rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// subdomainCount returns the number of dot-separated labels minus two.
// The value is negative for hosts with fewer than two labels and is only
// meaningful as "not a multi-label host" in that case.
func subdomainCount(host string) int {
	return len(strings.Split(host, ".")) - 2
}
