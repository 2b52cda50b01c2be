package classifier

import (
	"context"
	"log/slog"

	"github.com/phishscan/phishscan/internal/model"
)

// Fallback tries a primary classifier and falls back to a secondary one
// when the primary is absent or fails. With a rule-based secondary the
// composite never fails, so scoring always completes.
type Fallback struct {
	// primary is tried first; may be nil when no remote model is
	// configured.
	primary Classifier

	// secondary answers when primary is nil or errors.
	secondary Classifier

	// logger for structured logging.
	logger *slog.Logger
}

// NewFallback creates a composite classifier. secondary must not be nil.
func NewFallback(primary, secondary Classifier, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// Name returns the classifier name.
func (f *Fallback) Name() string {
	if f.primary == nil {
		return f.secondary.Name()
	}
	return f.primary.Name() + "+" + f.secondary.Name()
}

// Predict returns the primary's score when it succeeds and the
// secondary's otherwise.
func (f *Fallback) Predict(ctx context.Context, features *model.FeatureVector) (float64, error) {
	if f.primary != nil {
		score, err := f.primary.Predict(ctx, features)
		if err == nil {
			return score, nil
		}
		f.logger.Warn("primary classifier failed, falling back",
			"primary", f.primary.Name(),
			"fallback", f.secondary.Name(),
			"error", err,
		)
	}
	return f.secondary.Predict(ctx, features)
}
