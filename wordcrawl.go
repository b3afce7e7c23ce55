// Package wordcrawl provides a depth-bounded web crawler that counts word
// frequencies across every page it visits, plus a cache of the resulting
// tables keyed by seed URL.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package wordcrawl
