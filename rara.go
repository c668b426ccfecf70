// Package rara crawls a paginated archive of grammatical rarities and turns
// each article page into a structured Record. Records accumulate in an
// integer-keyed Collection that can be saved, loaded, merged and exported.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, etree/).
package rara
