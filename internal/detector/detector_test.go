package detector

import (
	"context"
	"errors"
	"testing"

	"github.com/phishscan/phishscan/internal/classifier"
	"github.com/phishscan/phishscan/internal/model"
)

// stubCollector returns a fixed feature vector.
type stubCollector struct {
	vec model.FeatureVector
}

func (s *stubCollector) Collect(_ context.Context, rawURL string) model.FeatureVector {
	vec := s.vec
	vec.URL = rawURL
	return vec
}

// stubClassifier returns a fixed score or error.
type stubClassifier struct {
	score float64
	err   error
}

func (s *stubClassifier) Predict(_ context.Context, _ *model.FeatureVector) (float64, error) {
	return s.score, s.err
}

func (s *stubClassifier) Name() string { return "stub" }

// TestAnalyze tests the end-to-end path from features to risk level.
func TestAnalyze(t *testing.T) {
	t.Parallel()

	col := &stubCollector{vec: model.FeatureVector{Host: "evil.test"}}
	d := New(col, &stubClassifier{score: 0.75})

	result, err := d.Analyze(context.Background(), "https://evil.test/login")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.Features.URL != "https://evil.test/login" {
		t.Errorf("Features.URL = %q", result.Features.URL)
	}
	if result.Score != 0.75 {
		t.Errorf("Score = %v, expected 0.75", result.Score)
	}
	if result.RiskLevel != model.RiskHigh {
		t.Errorf("RiskLevel = %v, expected HIGH", result.RiskLevel)
	}
	if result.AnalyzedAt.IsZero() {
		t.Error("AnalyzedAt should be set")
	}
}

// TestAnalyzeEmptyURL tests the one input that is rejected outright.
func TestAnalyzeEmptyURL(t *testing.T) {
	t.Parallel()

	d := New(&stubCollector{}, &stubClassifier{})
	if _, err := d.Analyze(context.Background(), ""); !errors.Is(err, ErrEmptyURL) {
		t.Errorf("got %v, expected ErrEmptyURL", err)
	}
}

// TestAnalyzeClassifierErrorFallsBackToRules tests that a failing
// classifier never fails the analysis: the rule-based scorer answers.
func TestAnalyzeClassifierErrorFallsBackToRules(t *testing.T) {
	t.Parallel()

	// HasIPHost (0.3) + invalid TLS (0.3) + new domain (0.2) = 0.8.
	col := &stubCollector{vec: model.FeatureVector{
		HasIPHost:    true,
		TLS:          model.TLSInfo{Valid: false},
		Registration: model.RegistrationInfo{IsNewDomain: true},
	}}
	d := New(col, &stubClassifier{err: errors.New("model down")})

	result, err := d.Analyze(context.Background(), "http://192.0.2.10/login")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if diff := result.Score - 0.8; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Score = %v, expected the rule-based 0.8", result.Score)
	}
	if result.RiskLevel != model.RiskHigh {
		t.Errorf("RiskLevel = %v, expected HIGH", result.RiskLevel)
	}
}

// TestAnalyzeWhitelistedIsLow tests the whitelist override on the final
// risk level.
func TestAnalyzeWhitelistedIsLow(t *testing.T) {
	t.Parallel()

	col := &stubCollector{vec: model.FeatureVector{IsWhitelisted: true}}
	d := New(col, &stubClassifier{score: 0.95})

	result, err := d.Analyze(context.Background(), "https://google.com")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.RiskLevel != model.RiskLow {
		t.Errorf("RiskLevel = %v, expected LOW for a whitelisted host", result.RiskLevel)
	}
}

// TestAnalyzeCancelledContext tests that a cancelled context aborts the
// analysis before any work starts.
func TestAnalyzeCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(&stubCollector{}, &stubClassifier{})
	if _, err := d.Analyze(ctx, "https://example.com"); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, expected context.Canceled", err)
	}
}

// TestAnalyzeUsesFallbackComposite tests the detector wired with the real
// fallback classifier.
func TestAnalyzeUsesFallbackComposite(t *testing.T) {
	t.Parallel()

	col := &stubCollector{vec: model.FeatureVector{
		MatchedPatterns: []string{`secure.*login`},
		SubdomainCount:  4,
		TLS:             model.TLSInfo{Valid: true},
	}}
	cls := classifier.NewFallback(
		&stubClassifier{err: errors.New("unreachable")},
		classifier.NewRuleBasedClassifier(),
		nil,
	)
	d := New(col, cls)

	result, err := d.Analyze(context.Background(), "https://a.b.c.d.example.test/secure/login")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	// pattern (0.2) + deep subdomains (0.2) = 0.4 exactly: stays LOW.
	if result.RiskLevel != model.RiskLow {
		t.Errorf("RiskLevel = %v, expected LOW at the 0.4 boundary", result.RiskLevel)
	}
}
