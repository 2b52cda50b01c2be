package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/phishscan/phishscan/internal/model"
)

// JSONWriter outputs results in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output with the given prefix
// and per-level indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// jsonReport is the top-level JSON document: per-URL results plus a
// summary of how many landed in each risk band.
type jsonReport struct {
	GeneratedAt time.Time               `json:"generated_at"`
	TotalURLs   int                     `json:"total_urls"`
	HighRisk    int                     `json:"high_risk"`
	MediumRisk  int                     `json:"medium_risk"`
	LowRisk     int                     `json:"low_risk"`
	Results     []*model.AnalysisResult `json:"results"`
}

// Write outputs the results as a single JSON document.
func (w *JSONWriter) Write(results []*model.AnalysisResult) (int, error) {
	high, medium, low := countByLevel(results)

	doc := jsonReport{
		GeneratedAt: time.Now(),
		TotalURLs:   len(results),
		HighRisk:    high,
		MediumRisk:  medium,
		LowRisk:     low,
		Results:     results,
	}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(doc, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
