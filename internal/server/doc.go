// Package server exposes the analyzer over HTTP: a JSON analysis
// endpoint, a health check, and a minimal browser form.
package server
