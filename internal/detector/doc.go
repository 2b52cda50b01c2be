// Package detector orchestrates a full phishing analysis: feature
// collection, scoring, and risk classification for one URL, plus
// concurrent batch processing for many.
package detector
