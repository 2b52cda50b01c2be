package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/phishscan/phishscan/internal/model"
)

// MarkdownWriter outputs results as GitHub-flavored markdown for
// documentation and sharing.
type MarkdownWriter struct {
	baseWriter

	// titleCaser renders risk levels as "High" instead of "HIGH" for
	// display.
	titleCaser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titleCaser: cases.Title(language.English),
	}
}

// Write outputs the results in markdown format.
func (w *MarkdownWriter) Write(results []*model.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeSummary(md, results)
	for _, result := range results {
		if result == nil {
			continue
		}
		w.writeResult(md, result)
	}

	return len(md.String()), md.Build()
}

// writeSummary writes the report header and the per-URL overview table.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, results []*model.AnalysisResult) {
	md.H1("Phishing Detection Report")
	md.PlainText("")

	high, medium, low := countByLevel(results)
	md.Table(markdown.TableSet{
		Header: []string{"Risk Level", "Count"},
		Rows: [][]string{
			{"High", fmt.Sprintf("%d", high)},
			{"Medium", fmt.Sprintf("%d", medium)},
			{"Low", fmt.Sprintf("%d", low)},
		},
	})
	md.PlainText("")

	rows := make([][]string, 0, len(results))
	for _, result := range results {
		if result == nil {
			continue
		}
		rows = append(rows, []string{
			"`" + result.Features.URL + "`",
			w.levelText(result.RiskLevel),
			fmt.Sprintf("%.2f", result.Score),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Risk", "Score"},
		Rows:   rows,
	})
	md.PlainText("")

	switch {
	case high > 0:
		md.Cautionf("%d URL(s) classified as high phishing risk.", high)
	case medium > 0:
		md.Warningf("%d URL(s) classified as medium phishing risk.", medium)
	default:
		md.Note("No elevated phishing risk detected.")
	}
}

// writeResult writes the per-URL detail section.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, result *model.AnalysisResult) {
	features := result.Features

	md.H2(features.URL)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Risk Level", w.levelText(result.RiskLevel)},
			{"Score", fmt.Sprintf("%.2f", result.Score)},
			{"Host", "`" + features.Host + "`"},
			{"IP Host", fmt.Sprintf("%t", features.HasIPHost)},
			{"Whitelisted", fmt.Sprintf("%t", features.IsWhitelisted)},
			{"Valid TLS", fmt.Sprintf("%t", features.TLS.Valid)},
			{"New Domain", fmt.Sprintf("%t", features.Registration.IsNewDomain)},
			{"Analyzed At", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	if len(features.MatchedPatterns) > 0 {
		md.H3("Matched Patterns")
		md.PlainText("")
		patterns := make([]string, 0, len(features.MatchedPatterns))
		for _, pattern := range features.MatchedPatterns {
			patterns = append(patterns, "`"+pattern+"`")
		}
		md.BulletList(patterns...)
		md.PlainText("")
	}

	if recommendations := Recommendations(result); len(recommendations) > 0 {
		md.H3("Recommendations")
		md.PlainText("")
		md.BulletList(recommendations...)
		md.PlainText("")
	}
}

// levelText renders a risk level in title case for display.
func (w *MarkdownWriter) levelText(level model.RiskLevel) string {
	return w.titleCaser.String(strings.ToLower(level.String()))
}
