package classifier

import (
	"context"
	"testing"

	"github.com/phishscan/phishscan/internal/model"
)

// validTLS is a healthy certificate record contributing no weight.
func validTLS() model.TLSInfo {
	return model.TLSInfo{Valid: true}
}

// agedRegistration is an established-domain record contributing no weight.
func agedRegistration() model.RegistrationInfo {
	days := 3650
	return model.RegistrationInfo{DaysOld: &days}
}

// TestRuleBasedPredict tests the additive weights against known feature
// combinations.
func TestRuleBasedPredict(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		features model.FeatureVector
		expected float64
	}{
		{
			name: "no signals",
			features: model.FeatureVector{
				TLS:          validTLS(),
				Registration: agedRegistration(),
			},
			expected: 0.0,
		},
		{
			name: "ip host with broken tls on a new domain",
			features: model.FeatureVector{
				HasIPHost:    true,
				TLS:          model.TLSInfo{Valid: false},
				Registration: model.RegistrationInfo{IsNewDomain: true},
			},
			expected: 0.8,
		},
		{
			name: "deep subdomains with two matched patterns",
			features: model.FeatureVector{
				SubdomainCount:  4,
				MatchedPatterns: []string{`secure.*login`, `verify.*account`},
				TLS:             validTLS(),
				Registration:    agedRegistration(),
			},
			expected: 0.6,
		},
		{
			name: "long host",
			features: model.FeatureVector{
				HostLength:   31,
				TLS:          validTLS(),
				Registration: agedRegistration(),
			},
			expected: 0.1,
		},
		{
			name: "host length at the boundary contributes nothing",
			features: model.FeatureVector{
				HostLength:   30,
				TLS:          validTLS(),
				Registration: agedRegistration(),
			},
			expected: 0.0,
		},
		{
			name: "self-signed but otherwise valid chain",
			features: model.FeatureVector{
				TLS:          model.TLSInfo{Valid: true, SelfSigned: true},
				Registration: agedRegistration(),
			},
			expected: 0.2,
		},
		{
			name: "content signals",
			features: model.FeatureVector{
				TLS:          validTLS(),
				Registration: agedRegistration(),
				Content: model.ContentInfo{
					Analyzed:           true,
					SuspiciousKeywords: []string{"verify account", "urgent action"},
					HasPasswordField:   true,
					ExternalLinkCount:  11,
				},
			},
			expected: 0.4,
		},
		{
			name: "ten external links contribute nothing",
			features: model.FeatureVector{
				TLS:          validTLS(),
				Registration: agedRegistration(),
				Content:      model.ContentInfo{Analyzed: true, ExternalLinkCount: 10},
			},
			expected: 0.0,
		},
		{
			name: "whitelist credit offsets signals",
			features: model.FeatureVector{
				IsWhitelisted: true,
				HasIPHost:     true,
				TLS:           model.TLSInfo{Valid: false},
				Registration:  agedRegistration(),
			},
			expected: 0.1, // 0.3 + 0.3 - 0.5
		},
		{
			name: "whitelist credit clamps at zero",
			features: model.FeatureVector{
				IsWhitelisted: true,
				TLS:           validTLS(),
				Registration:  agedRegistration(),
			},
			expected: 0.0,
		},
		{
			name: "everything suspicious clamps at one",
			features: model.FeatureVector{
				HasIPHost:       true,
				MatchedPatterns: []string{"a", "b", "c", "d"},
				HostLength:      40,
				SubdomainCount:  5,
				TLS:             model.TLSInfo{Valid: false, SelfSigned: true},
				Registration:    model.RegistrationInfo{IsNewDomain: true},
				Content: model.ContentInfo{
					Analyzed:           true,
					SuspiciousKeywords: []string{"verify account", "suspended", "act now"},
					HasPasswordField:   true,
					ExternalLinkCount:  50,
				},
			},
			expected: 1.0,
		},
	}

	c := NewRuleBasedClassifier()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := c.Predict(context.Background(), &tc.features)
			if err != nil {
				t.Fatalf("Predict failed: %v", err)
			}
			if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("score = %v, expected %v", got, tc.expected)
			}
		})
	}
}

// TestRuleBasedPredictIsPure tests that repeated predictions on the same
// vector yield identical scores.
func TestRuleBasedPredictIsPure(t *testing.T) {
	t.Parallel()

	features := model.FeatureVector{
		HasIPHost:       true,
		MatchedPatterns: []string{"secure.*login"},
		TLS:             model.TLSInfo{Valid: false, SelfSigned: true},
		Registration:    model.RegistrationInfo{IsNewDomain: true},
	}

	c := NewRuleBasedClassifier()
	first, _ := c.Predict(context.Background(), &features)
	for range 10 {
		got, err := c.Predict(context.Background(), &features)
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		if got != first {
			t.Fatalf("score changed between runs: %v then %v", first, got)
		}
	}
}
