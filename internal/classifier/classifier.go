package classifier

import (
	"context"

	"github.com/phishscan/phishscan/internal/model"
)

// Classifier scores a feature vector with a phishing probability in
// [0.0, 1.0].
type Classifier interface {
	// Predict returns the phishing probability for the feature vector.
	Predict(ctx context.Context, features *model.FeatureVector) (float64, error)

	// Name returns the classifier's name for logging purposes.
	Name() string
}

// clamp bounds score to [0.0, 1.0].
func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
