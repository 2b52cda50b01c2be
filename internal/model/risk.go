package model

import (
	"encoding/json"
	"fmt"
)

// RiskLevel is the discrete phishing risk classification of a URL.
type RiskLevel int

const (
	// RiskLow indicates the URL shows no significant phishing signals,
	// or the host is whitelisted.
	RiskLow RiskLevel = iota

	// RiskMedium indicates the composite score exceeds the medium
	// threshold but not the high one.
	RiskMedium

	// RiskHigh indicates the composite score exceeds the high threshold.
	RiskHigh
)

// String returns the canonical upper-case label for the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// ParseRiskLevel converts a label produced by String back to a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLow, nil
	case "MEDIUM":
		return RiskMedium, nil
	case "HIGH":
		return RiskHigh, nil
	default:
		return RiskLow, fmt.Errorf("unknown risk level %q", s)
	}
}

// MarshalJSON encodes the risk level as its string label.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a risk level from its string label.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}
