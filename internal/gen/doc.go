// Package gen renders the derived artifacts of a loaded symbol registry.
//
// Generation approach uses text/template for the fixed page scaffolding
// and plain formatting for the data rows, so output is deterministic and
// diffable across runs.
//
// Artifacts:
//   - Cross-mapping data file (semicolon-delimited, one row per symbol
//     with at least one equivalent carrier code)
//   - HTML background chart (full row set with carrier detail cells)
package gen
