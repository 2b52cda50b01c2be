// Package config holds the scanner configuration and the detection rules.
//
// Two inputs are distinguished: the detection rules (suspicious URL
// patterns, trusted-domain allowlist, remote classifier endpoint), loaded
// from a JSON file that is materialized with defaults on first run, and
// the scanner settings (timeouts, user agent, batch size), populated from
// CLI flags with optional overrides from a .phishscan YAML file.
package config
