// Package main provides the entry point for the phishscan CLI.
//
// phishscan analyzes URLs for phishing indicators: suspicious URL
// structure, TLS certificate problems, page content signals, and domain
// registration age. Each URL gets a risk score and a LOW/MEDIUM/HIGH
// classification.
//
// Usage:
//
//	phishscan scan <url> [<url>...]
//	phishscan serve
//
// See --help for all available options.
package main

// main is the entry point for phishscan.
func main() {
	Execute()
}
