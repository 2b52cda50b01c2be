package classifier

import "github.com/phishscan/phishscan/internal/model"

// Risk thresholds. Both comparisons are strict: a score exactly at a
// threshold stays in the lower band.
const (
	// HighRiskThreshold is the score above which the risk is HIGH.
	HighRiskThreshold = 0.7

	// MediumRiskThreshold is the score above which the risk is MEDIUM.
	MediumRiskThreshold = 0.4
)

// RiskLevelFor maps a score to a risk level. Whitelisted hosts are
// always LOW regardless of the score.
func RiskLevelFor(features *model.FeatureVector, score float64) model.RiskLevel {
	if features.IsWhitelisted {
		return model.RiskLow
	}
	switch {
	case score > HighRiskThreshold:
		return model.RiskHigh
	case score > MediumRiskThreshold:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
