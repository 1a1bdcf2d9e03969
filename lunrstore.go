// Package lunrstore loads and inspects the search store that a static site
// build emits for its client-side lunr.js search widget.
//
// The store is a single snapshot: an ordered array of page records produced
// once per build. This package contains domain types and interfaces following
// Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., fs/, http/,
// bloom/).
package lunrstore
