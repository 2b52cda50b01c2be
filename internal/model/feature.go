package model

import "time"

// FeatureVector aggregates every signal extracted for a single URL.
// All four sub-records (lexical fields, TLS, Content, Registration) are
// always present: a failed extractor leaves a degraded sub-record with
// its Error field set, never a missing one.
type FeatureVector struct {
	// URL is the raw URL string that was analyzed.
	URL string `json:"url"`

	// Host is the best-effort host extracted from the URL.
	// It may be empty for malformed URLs.
	Host string `json:"host"`

	// HasIPHost reports whether the host contains a dotted-quad IP address.
	HasIPHost bool `json:"has_ip_host"`

	// MatchedPatterns lists the configured suspicious patterns that matched
	// the URL, in configuration order. Every pattern is evaluated; there is
	// no short-circuit on first match.
	MatchedPatterns []string `json:"matched_patterns"`

	// HostLength is the length of Host in bytes.
	HostLength int `json:"host_length"`

	// SubdomainCount is the number of dot-separated host labels minus two.
	// Negative values are permitted and mean "not a multi-label host".
	SubdomainCount int `json:"subdomain_count"`

	// IsWhitelisted reports whether Host is an exact member of the
	// configured trusted-domain allowlist.
	IsWhitelisted bool `json:"is_whitelisted"`

	// TLS holds the certificate inspection result.
	TLS TLSInfo `json:"tls"`

	// Content holds the page content analysis result.
	Content ContentInfo `json:"content"`

	// Registration holds the domain registration lookup result.
	Registration RegistrationInfo `json:"registration"`
}

// TLSInfo describes the TLS certificate state of the analyzed host.
//
// When the handshake cannot complete at all (timeout, refused connection,
// untrusted chain), Valid is false and SelfSigned is true: the inspector
// assumes the worst rather than reporting "unknown".
type TLSInfo struct {
	// Valid reports whether the handshake succeeded and the chain
	// verified against the trusted root store.
	Valid bool `json:"valid"`

	// SelfSigned is true when the leaf certificate's issuer equals its
	// subject, or when the handshake could not complete.
	SelfSigned bool `json:"is_self_signed"`

	// Issuer is the issuer distinguished name of the leaf certificate.
	Issuer string `json:"issuer,omitempty"`

	// Subject is the subject distinguished name of the leaf certificate.
	Subject string `json:"subject,omitempty"`

	// Expiry is the NotAfter timestamp of the leaf certificate.
	Expiry time.Time `json:"expiry,omitzero"`

	// Error describes why inspection failed, if it did.
	Error string `json:"error,omitempty"`
}

// ContentInfo describes phishing indicators found in the fetched page.
type ContentInfo struct {
	// SuspiciousKeywords lists the fixed suspicion keywords found in the
	// lower-cased page text.
	SuspiciousKeywords []string `json:"suspicious_keywords"`

	// HasPasswordField reports whether any form contains a password input.
	HasPasswordField bool `json:"has_password_field"`

	// FormCount is the number of <form> elements on the page.
	FormCount int `json:"form_count"`

	// ExternalLinkCount is the number of distinct outbound anchor links
	// whose host differs from the analyzed URL's host.
	ExternalLinkCount int `json:"external_link_count"`

	// Title is the page title text.
	Title string `json:"title,omitempty"`

	// HasFavicon reports whether the page declares a favicon link element.
	HasFavicon bool `json:"has_favicon"`

	// Analyzed is false when the fetch or parse failed; all other fields
	// are then at their zero values.
	Analyzed bool `json:"analyzed"`

	// Error describes why analysis failed, if it did.
	Error string `json:"error,omitempty"`
}

// RegistrationInfo describes the registration age of the analyzed domain.
//
// A failed lookup yields IsNewDomain=true: an unknown registration age is
// treated as suspicious, not neutral.
type RegistrationInfo struct {
	// DaysOld is the domain age in whole calendar days, or nil when the
	// creation date is unavailable.
	DaysOld *int `json:"days_old,omitempty"`

	// IsNewDomain is true when the domain is younger than the new-domain
	// threshold or its age is unknown.
	IsNewDomain bool `json:"is_new_domain"`

	// Registrar is the registrar name, when known.
	Registrar string `json:"registrar,omitempty"`

	// CreatedAt is the registration creation date, when known.
	CreatedAt time.Time `json:"created_at,omitzero"`

	// Error describes why the lookup failed, if it did.
	Error string `json:"error,omitempty"`
}
