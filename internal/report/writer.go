package report

import (
	"io"

	"github.com/phishscan/phishscan/internal/model"
)

// Writer renders a set of analysis results to a configured destination.
type Writer interface {
	// Write outputs the results. Returns the number of bytes written and
	// any error encountered.
	Write(results []*model.AnalysisResult) (int, error)
}

// MultiWriter writes to multiple Writers, which lets one run render to
// both the terminal and a file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the results to all configured Writers. It returns the
// total bytes written and stops on the first error.
func (m *MultiWriter) Write(results []*model.AnalysisResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(results)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// countByLevel tallies results per risk level, skipping nil slots left by
// failed batch analyses.
func countByLevel(results []*model.AnalysisResult) (high, medium, low int) {
	for _, r := range results {
		if r == nil {
			continue
		}
		switch r.RiskLevel {
		case model.RiskHigh:
			high++
		case model.RiskMedium:
			medium++
		case model.RiskLow:
			low++
		}
	}
	return high, medium, low
}
