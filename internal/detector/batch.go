package detector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/model"
)

// Analyzer is the single-URL analysis the batch fans out over.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*model.AnalysisResult, error)
}

// BatchProcessor analyzes multiple URLs concurrently while keeping
// results in input order.
type BatchProcessor struct {
	// analyzer performs each individual analysis.
	analyzer Analyzer

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger for batch-level logging.
	logger *slog.Logger

	// results collects completed analyses, indexed by input position.
	results []*model.AnalysisResult
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a batch processor over the given analyzer.
func NewBatchProcessor(analyzer Analyzer, opts ...BatchOption) *BatchProcessor {
	b := &BatchProcessor{
		analyzer:    analyzer,
		concurrency: config.DefaultBatchSize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// ProcessBatch analyzes the URLs concurrently, honoring the concurrency
// limit and context cancellation.
//
// Results come back in input order. A URL whose analysis errored leaves a
// nil slot; the error return is non-nil only when the batch was cancelled.
func (b *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) ([]*model.AnalysisResult, error) {
	b.logger.Info("starting batch analysis",
		"total_urls", len(urls),
		"concurrency", b.concurrency,
	)

	start := time.Now()
	b.results = make([]*model.AnalysisResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, rawURL := range urls {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			result, err := b.analyzer.Analyze(gctx, rawURL)
			if err != nil {
				b.logger.Warn("analysis failed",
					"url", rawURL,
					"error", err,
				)
				// A single bad URL must not cancel the rest of the batch.
				return nil
			}

			b.mu.Lock()
			b.results[i] = result
			b.mu.Unlock()
			return nil
		})
	}

	err := g.Wait()

	b.logger.Info("batch analysis complete",
		"total_urls", len(urls),
		"duration", time.Since(start),
	)

	return b.results, err
}
