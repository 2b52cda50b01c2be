package classifier

import (
	"context"

	"github.com/phishscan/phishscan/internal/model"
)

// Weight contributions of the rule-based classifier. Scores accumulate
// additively and are clamped to [0.0, 1.0].
const (
	ipHostWeight         = 0.3
	patternWeight        = 0.2 // per matched pattern
	longHostWeight       = 0.1
	deepSubdomainWeight  = 0.2
	invalidTLSWeight     = 0.3
	selfSignedWeight     = 0.2
	keywordWeight        = 0.1 // per suspicious keyword
	passwordFieldWeight  = 0.1
	manyExternalWeight   = 0.1
	newDomainWeight      = 0.2
	whitelistCredit      = 0.5

	// longHostLength is the host length above which the host is
	// considered suspiciously long.
	longHostLength = 30

	// deepSubdomainCount is the subdomain count above which nesting is
	// considered suspicious.
	deepSubdomainCount = 3

	// manyExternalLinks is the distinct external link count above which
	// the page is considered link-heavy.
	manyExternalLinks = 10
)

// RuleBasedClassifier scores features with fixed additive weights.
// It is stateless, never fails, and always produces the same score for
// the same vector.
type RuleBasedClassifier struct{}

// NewRuleBasedClassifier creates the weighted rule-based classifier.
func NewRuleBasedClassifier() *RuleBasedClassifier {
	return &RuleBasedClassifier{}
}

// Name returns the classifier name.
func (c *RuleBasedClassifier) Name() string {
	return "rule-based"
}

// Predict computes the additive weighted score for the feature vector.
// The error result is always nil.
func (c *RuleBasedClassifier) Predict(_ context.Context, features *model.FeatureVector) (float64, error) {
	score := 0.0

	if features.HasIPHost {
		score += ipHostWeight
	}
	score += patternWeight * float64(len(features.MatchedPatterns))
	if features.HostLength > longHostLength {
		score += longHostWeight
	}
	if features.SubdomainCount > deepSubdomainCount {
		score += deepSubdomainWeight
	}

	if !features.TLS.Valid {
		score += invalidTLSWeight
	}
	if features.TLS.SelfSigned {
		score += selfSignedWeight
	}

	score += keywordWeight * float64(len(features.Content.SuspiciousKeywords))
	if features.Content.HasPasswordField {
		score += passwordFieldWeight
	}
	if features.Content.ExternalLinkCount > manyExternalLinks {
		score += manyExternalWeight
	}

	if features.Registration.IsNewDomain {
		score += newDomainWeight
	}

	if features.IsWhitelisted {
		score -= whitelistCredit
	}

	return clamp(score), nil
}
