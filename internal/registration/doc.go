// Package registration estimates domain age from WHOIS registration
// metadata. A failed lookup is treated as "new domain": unknown age is
// suspicious, not neutral.
package registration
