package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/phishscan/phishscan/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose enables per-feature detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with per-feature details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the results in human-readable format.
func (w *SimpleWriter) Write(results []*model.AnalysisResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, results)
	for _, result := range results {
		if result == nil {
			continue
		}
		w.writeResult(&sb, result)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with the risk summary.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, results []*model.AnalysisResult) {
	high, medium, low := countByLevel(results)

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                     PHISHING DETECTION REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("URLs Analyzed:  %d\n", len(results)))
	sb.WriteString(fmt.Sprintf("High Risk:      %d\n", high))
	sb.WriteString(fmt.Sprintf("Medium Risk:    %d\n", medium))
	sb.WriteString(fmt.Sprintf("Low Risk:       %d\n", low))
	sb.WriteString("\n")
}

// writeResult writes one analyzed URL.
func (w *SimpleWriter) writeResult(sb *strings.Builder, result *model.AnalysisResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("URL:        %s\n", result.Features.URL))
	sb.WriteString(fmt.Sprintf("Risk Level: [%s] %s\n", riskIndicator(result.RiskLevel), result.RiskLevel))
	sb.WriteString(fmt.Sprintf("Score:      %.2f\n", result.Score))

	if len(result.Features.MatchedPatterns) > 0 {
		sb.WriteString("Matched Patterns:\n")
		for _, pattern := range result.Features.MatchedPatterns {
			sb.WriteString(fmt.Sprintf("  * %s\n", pattern))
		}
	}

	if w.verbose {
		w.writeFeatures(sb, &result.Features)
	}

	if recommendations := Recommendations(result); len(recommendations) > 0 {
		sb.WriteString("Recommendations:\n")
		for _, rec := range recommendations {
			sb.WriteString(fmt.Sprintf("  - %s\n", rec))
		}
	}
	sb.WriteString("\n")
}

// writeFeatures writes the per-extractor detail lines.
func (w *SimpleWriter) writeFeatures(sb *strings.Builder, features *model.FeatureVector) {
	sb.WriteString("Features:\n")
	sb.WriteString(fmt.Sprintf("  Host:            %s (length %d, %d subdomains)\n",
		features.Host, features.HostLength, features.SubdomainCount))
	sb.WriteString(fmt.Sprintf("  IP Host:         %t\n", features.HasIPHost))
	sb.WriteString(fmt.Sprintf("  Whitelisted:     %t\n", features.IsWhitelisted))

	if features.TLS.Error != "" {
		sb.WriteString(fmt.Sprintf("  TLS:             failed (%s)\n", features.TLS.Error))
	} else {
		sb.WriteString(fmt.Sprintf("  TLS:             valid=%t self-signed=%t issuer=%s\n",
			features.TLS.Valid, features.TLS.SelfSigned, features.TLS.Issuer))
	}

	if features.Content.Analyzed {
		sb.WriteString(fmt.Sprintf("  Content:         %d forms, password=%t, %d external links, %d keywords\n",
			features.Content.FormCount, features.Content.HasPasswordField,
			features.Content.ExternalLinkCount, len(features.Content.SuspiciousKeywords)))
	} else {
		sb.WriteString(fmt.Sprintf("  Content:         not analyzed (%s)\n", features.Content.Error))
	}

	if features.Registration.DaysOld != nil {
		sb.WriteString(fmt.Sprintf("  Registration:    %d days old, new=%t\n",
			*features.Registration.DaysOld, features.Registration.IsNewDomain))
	} else {
		sb.WriteString(fmt.Sprintf("  Registration:    age unknown (%s)\n", features.Registration.Error))
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by phishscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// riskIndicator returns a visual indicator for the risk level.
func riskIndicator(level model.RiskLevel) string {
	switch level {
	case model.RiskHigh:
		return "!!!"
	case model.RiskMedium:
		return "!!"
	case model.RiskLow:
		return "-"
	default:
		return "?"
	}
}
