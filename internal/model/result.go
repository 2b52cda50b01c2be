package model

import "time"

// AnalysisResult is the outcome of analyzing one URL.
// It is produced once per analysis call and never retained by the core;
// the caller owns any persistence or rendering.
type AnalysisResult struct {
	// Features is the complete feature vector the score was derived from.
	Features FeatureVector `json:"features"`

	// Score is the phishing probability in [0, 1].
	Score float64 `json:"score"`

	// RiskLevel is the discrete classification derived from Score and
	// the whitelist state.
	RiskLevel RiskLevel `json:"risk_level"`

	// AnalyzedAt is the time the analysis completed.
	AnalyzedAt time.Time `json:"analyzed_at"`
}
