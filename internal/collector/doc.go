// Package collector assembles the full feature vector for a URL by
// running the lexical analyzer synchronously and fanning the network
// extractors (TLS, content, registration) out concurrently. Extractor
// failures degrade to conservative sub-records instead of failing the
// collection.
package collector
