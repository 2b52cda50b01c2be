package detector

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phishscan/phishscan/internal/classifier"
	"github.com/phishscan/phishscan/internal/collector"
	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/content"
	"github.com/phishscan/phishscan/internal/lexical"
	"github.com/phishscan/phishscan/internal/model"
	"github.com/phishscan/phishscan/internal/registration"
	"github.com/phishscan/phishscan/internal/tlsprobe"
)

// ErrEmptyURL is returned when there is no URL to analyze.
var ErrEmptyURL = errors.New("no URL to analyze")

// FeatureCollector assembles the feature vector for one URL.
type FeatureCollector interface {
	Collect(ctx context.Context, rawURL string) model.FeatureVector
}

// Detector analyzes URLs end to end. An analysis always completes with a
// scored result: extractor failures degrade inside the collector, and
// classifier failures fall back to the rule-based scorer.
type Detector struct {
	// collector assembles the feature vector.
	collector FeatureCollector

	// classifier scores the feature vector.
	classifier classifier.Classifier

	// lastResort scores when even the configured classifier errors.
	lastResort *classifier.RuleBasedClassifier

	// now returns the current time; overridable in tests.
	now func() time.Time

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		d.logger = logger
	}
}

// New creates a Detector from a collector and a classifier.
func New(col FeatureCollector, cls classifier.Classifier, opts ...Option) *Detector {
	d := &Detector{
		collector:  col,
		classifier: cls,
		lastResort: classifier.NewRuleBasedClassifier(),
		now:        time.Now,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Default wires a Detector with the standard extractor stack: lexical
// analysis from the rules, TLS inspection, content fetching, WHOIS
// registration lookup, and a remote classifier (when configured) backed
// by the rule-based fallback.
func Default(cfg *config.Config, rules *config.Rules, cache registration.Cache, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}

	regOpts := []registration.Option{
		registration.WithTimeout(cfg.WhoisTimeout),
		registration.WithLogger(logger),
	}
	if cache != nil {
		regOpts = append(regOpts, registration.WithCache(cache))
	}

	col := collector.New(
		lexical.NewAnalyzer(rules),
		tlsprobe.NewInspector(
			tlsprobe.WithTimeout(cfg.TLSTimeout),
			tlsprobe.WithLogger(logger),
		),
		content.NewAnalyzer(
			content.WithTimeout(cfg.FetchTimeout),
			content.WithUserAgent(cfg.UserAgent),
			content.WithMaxBodySize(cfg.MaxBodySize),
			content.WithLogger(logger),
		),
		registration.NewLookup(regOpts...),
		collector.WithLogger(logger),
	)

	var remote classifier.Classifier
	if rules.AIModelEndpoint != "" {
		remote = classifier.NewRemoteClassifier(rules.AIModelEndpoint,
			classifier.WithPredictTimeout(cfg.ClassifierTimeout))
	}
	cls := classifier.NewFallback(remote, classifier.NewRuleBasedClassifier(), logger)

	return New(col, cls, WithLogger(logger))
}

// Analyze runs the full analysis for rawURL.
//
// The returned result always carries a complete feature vector, a score
// in [0, 1], and a risk level. Only an empty URL or a cancelled context
// produce an error.
func (d *Detector) Analyze(ctx context.Context, rawURL string) (*model.AnalysisResult, error) {
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := d.now()
	vec := d.collector.Collect(ctx, rawURL)

	score, err := d.classifier.Predict(ctx, &vec)
	if err != nil {
		d.logger.Warn("classifier failed, scoring with rules",
			"classifier", d.classifier.Name(),
			"url", rawURL,
			"error", err,
		)
		// The rule-based classifier never fails.
		score, _ = d.lastResort.Predict(ctx, &vec)
	}

	result := &model.AnalysisResult{
		Features:   vec,
		Score:      score,
		RiskLevel:  classifier.RiskLevelFor(&vec, score),
		AnalyzedAt: d.now(),
	}

	d.logger.Info("analysis complete",
		"url", rawURL,
		"score", result.Score,
		"risk_level", result.RiskLevel.String(),
		"duration", d.now().Sub(start),
	)

	return result, nil
}
