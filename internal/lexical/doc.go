// Package lexical derives structural features from a URL string alone.
// It performs no network I/O and never fails: malformed URLs still yield
// a best-effort (possibly empty) host.
package lexical
