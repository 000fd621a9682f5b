// Package carrier provides the per-vendor symbol catalogs that the
// registry reconciles against.
//
// Each of the three Japanese cell phone carriers (DoCoMo, KDDI, SoftBank)
// plus Google ships its own emoji character set. A Catalog is one vendor's
// table, loaded from a semicolon-delimited data file and indexed by the
// vendor's Unicode PUA code point.
//
// # Key capabilities
//
//   - Load a catalog from the fixed table format (uni;number;old;new;
//     shiftjis;jis;name_en;name_ja), with # comments
//   - Decode the Shift-JIS-encoded KDDI table transparently
//   - Look up a vendor symbol by its Unicode PUA code
//   - Build the vendor's hosted image HTML for a symbol
//   - Group the four catalogs into a Set keyed by the fixed carrier names
//
// The carrier name set is fixed at load time. Asking a Set for any other
// name is a caller error reported as ErrUnknownCarrier, never an empty
// result.
package carrier
