package registry

import (
	"slices"
	"strconv"
	"strings"
)

// ByCodePoint pairs a symbol with its parsed sort key: the code point
// list of its effective Unicode value.
type ByCodePoint struct {
	Key    []int
	Symbol *Symbol
}

// SymbolsByCodePoint returns symbols ordered by their effective code
// point: the standardized code point or sequence if present, else the
// proposed code point for in-proposal symbols, else the Google carrier
// code with any fallback marker stripped. Symbols with none of these are
// excluded.
//
// Keys compare as integer lists, never as strings, so proposed points in
// the reserved block interleave correctly with standardized ones. The
// sort is stable over document order; the key is computed once per
// symbol, so the ordering is deterministic across calls.
func (r *Registry) SymbolsByCodePoint(inProposalOnly bool) []ByCodePoint {
	var out []ByCodePoint

	for sym := range r.Symbols() {
		if inProposalOnly && !sym.InProposal {
			continue
		}

		uni := sym.Unicode()
		if uni == "" {
			if sym.InProposal {
				uni = sym.ProposedUnicode()
			} else {
				uni = strings.TrimPrefix(sym.carrierCodes["google"], ">")
			}
		}
		if uni == "" {
			continue
		}

		out = append(out, ByCodePoint{Key: parseCodePoints(uni), Symbol: sym})
	}

	slices.SortStableFunc(out, func(a, b ByCodePoint) int {
		return slices.Compare(a.Key, b.Key)
	})

	return out
}

// parseCodePoints turns a '+'-joined hex sequence into an integer list.
// Code grammar is validated at build time, so parse failures cannot
// happen here.
func parseCodePoints(uni string) []int {
	parts := strings.Split(uni, "+")
	points := make([]int, len(parts))
	for i, p := range parts {
		cp, _ := strconv.ParseUint(p, 16, 32)
		points[i] = int(cp)
	}

	return points
}
