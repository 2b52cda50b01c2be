package report

import "github.com/phishscan/phishscan/internal/model"

// Recommendations derives user-facing security advice from an analysis
// result. The advice is ordered from most to least urgent.
func Recommendations(result *model.AnalysisResult) []string {
	recommendations := make([]string, 0)
	features := result.Features

	if result.RiskLevel == model.RiskHigh {
		recommendations = append(recommendations,
			"HIGH RISK: Do not enter personal information on this site",
			"Avoid clicking links or downloading files",
			"Contact the legitimate organization directly if needed",
		)
	}

	if features.HasIPHost {
		recommendations = append(recommendations,
			"Site uses IP address instead of domain name - suspicious")
	}
	if !features.TLS.Valid {
		recommendations = append(recommendations,
			"No valid SSL certificate - data transmission not secure")
	}
	if len(features.Content.SuspiciousKeywords) > 0 {
		recommendations = append(recommendations,
			"Contains urgent/suspicious language - be cautious")
	}
	if features.Registration.IsNewDomain {
		recommendations = append(recommendations,
			"Domain is very new - exercise extra caution")
	}

	if result.RiskLevel == model.RiskLow {
		recommendations = append(recommendations,
			"Site appears legitimate, but always verify URLs carefully")
	}

	return recommendations
}
