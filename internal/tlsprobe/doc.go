// Package tlsprobe performs a TLS handshake against the analyzed host and
// reports certificate validity. When the handshake cannot complete at all,
// the caller degrades the result to the conservative "assume self-signed"
// state rather than treating it as unknown.
package tlsprobe
