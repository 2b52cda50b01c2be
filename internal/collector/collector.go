package collector

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/phishscan/phishscan/internal/lexical"
	"github.com/phishscan/phishscan/internal/model"
)

// LexicalAnalyzer derives structural URL features. It never fails.
type LexicalAnalyzer interface {
	Analyze(rawURL string) lexical.Result
}

// TLSInspector probes the TLS certificate of a host.
type TLSInspector interface {
	Inspect(ctx context.Context, host string) (model.TLSInfo, error)
}

// ContentAnalyzer fetches a URL and extracts page-level indicators.
type ContentAnalyzer interface {
	Analyze(ctx context.Context, rawURL string) (model.ContentInfo, error)
}

// RegistrationLookup resolves the registration age of a host.
type RegistrationLookup interface {
	Lookup(ctx context.Context, host string) (model.RegistrationInfo, error)
}

// Collector runs every extractor against a URL and assembles the feature
// vector. All four sub-records are always populated: extractor failures
// are logged and degraded, never propagated.
type Collector struct {
	// lexical derives the structural URL features.
	lexical LexicalAnalyzer

	// tls probes the host certificate.
	tls TLSInspector

	// content fetches and inspects the page.
	content ContentAnalyzer

	// registration resolves the domain registration age.
	registration RegistrationLookup

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// New creates a Collector from the four extractors.
func New(lex LexicalAnalyzer, tls TLSInspector, content ContentAnalyzer, reg RegistrationLookup, opts ...Option) *Collector {
	c := &Collector{
		lexical:      lex,
		tls:          tls,
		content:      content,
		registration: reg,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect extracts every feature for rawURL.
//
// The lexical pass runs first on the calling goroutine; the three network
// extractors then run concurrently, each writing its own sub-record.
// Collect itself never fails: a failed extractor leaves a degraded
// sub-record carrying the error text.
func (c *Collector) Collect(ctx context.Context, rawURL string) model.FeatureVector {
	lex := c.lexical.Analyze(rawURL)

	vec := model.FeatureVector{
		URL:             rawURL,
		Host:            lex.Host,
		HasIPHost:       lex.HasIPHost,
		MatchedPatterns: lex.MatchedPatterns,
		HostLength:      lex.HostLength,
		SubdomainCount:  lex.SubdomainCount,
		IsWhitelisted:   lex.IsWhitelisted,
	}

	// Each goroutine writes a distinct field of vec and always returns
	// nil, so g.Wait never reports an error.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		vec.TLS = collect(gctx, c.logger, "tls", rawURL,
			func(ctx context.Context) (model.TLSInfo, error) {
				return c.tls.Inspect(ctx, lex.Host)
			},
			degradeTLS,
		)
		return nil
	})

	g.Go(func() error {
		vec.Content = collect(gctx, c.logger, "content", rawURL,
			func(ctx context.Context) (model.ContentInfo, error) {
				return c.content.Analyze(ctx, rawURL)
			},
			degradeContent,
		)
		return nil
	})

	g.Go(func() error {
		vec.Registration = collect(gctx, c.logger, "registration", rawURL,
			func(ctx context.Context) (model.RegistrationInfo, error) {
				return c.registration.Lookup(ctx, lex.Host)
			},
			degradeRegistration,
		)
		return nil
	})

	_ = g.Wait()

	return vec
}

// collect runs one extractor and degrades its failure into a conservative
// sub-record.
func collect[T any](ctx context.Context, logger *slog.Logger, name, rawURL string,
	extract func(ctx context.Context) (T, error),
	degrade func(err error) T,
) T {
	result, err := extract(ctx)
	if err != nil {
		logger.Debug("feature extraction degraded",
			"extractor", name,
			"url", rawURL,
			"error", err,
		)
		return degrade(err)
	}
	return result
}

// degradeTLS assumes the worst when the certificate cannot be inspected.
func degradeTLS(err error) model.TLSInfo {
	return model.TLSInfo{
		Valid:      false,
		SelfSigned: true,
		Error:      err.Error(),
	}
}

// degradeContent marks the page as unanalyzed.
func degradeContent(err error) model.ContentInfo {
	return model.ContentInfo{
		Analyzed: false,
		Error:    err.Error(),
	}
}

// degradeRegistration treats an unknown registration age as new.
func degradeRegistration(err error) model.RegistrationInfo {
	return model.RegistrationInfo{
		IsNewDomain: true,
		Error:       err.Error(),
	}
}
