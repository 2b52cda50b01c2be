// Package content fetches the analyzed page and derives content-based
// suspicion signals: urgency keywords, password forms, outbound links,
// title, and favicon presence.
package content
