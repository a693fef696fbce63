// Package leadgen discovers local businesses from a map-style search,
// mines a public contact email from each business website, and deduplicates
// results against a two-tier store (per-requester ownership and a
// cross-requester global lead cache) before handing verified leads to an
// outbound messaging step.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, sqlite/, goquery/).
package leadgen
