// Package registry builds and queries the in-memory symbol registry for
// the emoji encoding proposal.
//
// The registry is the reconciliation point between the proposal's own
// symbol catalog (one XML document) and the four independently-encoded
// carrier symbol sets. It is built exactly once per process and is
// read-only afterwards; report generators only query it.
//
// # Key capabilities
//
//   - Parse the category/subcategory/symbol hierarchy with top-down
//     in_proposal inheritance
//   - Allocate proposed code points to not-yet-standardized symbols in
//     one deterministic document-order pass
//   - Classify each symbol's relationship to each carrier set as
//     round-trip, fallback, or no mapping
//   - Redirect KDDI-hosted symbol images through Google's durable
//     hosting where an equivalent Google code exists
//   - Iterate symbols in document order or sorted by effective code point
//
// Unknown carrier names are caller errors (ErrUnknownCarrier); structural
// problems in the source document are ErrMalformedDocument. Both fail
// loudly. Missing optional data (no mapping, no image, no legacy code)
// degrades to the next-weaker representation instead.
package registry
