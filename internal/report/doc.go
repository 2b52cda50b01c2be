// Package report renders analysis results for humans and tools.
//
// Three formats are supported:
//   - Simple: plain text for terminal display
//   - JSON: machine-readable output for tool integration
//   - Markdown: GitHub-flavored markdown for documentation and sharing
package report
