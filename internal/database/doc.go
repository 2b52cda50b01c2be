// Package database provides the SQLite-backed registration-age cache.
// Only WHOIS creation dates are cached; analysis results are never
// persisted by the core.
package database
