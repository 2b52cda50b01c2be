package config

import "errors"

var (
	// ErrNoTarget is returned when no URL was provided to scan.
	ErrNoTarget = errors.New("no target URL provided")

	// ErrInvalidTimeout is returned when a timeout is zero or negative.
	ErrInvalidTimeout = errors.New("timeouts must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrConflictingReportFormats is returned when both JSON and Markdown
	// report output are requested.
	ErrConflictingReportFormats = errors.New("JSON and Markdown report formats are mutually exclusive")

	// ErrInvalidMaxBodySize is returned when the maximum body size is negative.
	ErrInvalidMaxBodySize = errors.New("maximum body size must not be negative")
)
