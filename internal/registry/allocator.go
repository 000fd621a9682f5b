package registry

import (
	"fmt"
	"strings"
)

// The reserved block of the code point space set aside for newly proposed
// symbols.
const (
	reservedBlockFirst = 0x1F300
	reservedBlockLast  = 0x1F7FF
)

// allocator assigns proposed code points during the build pass. It runs
// exactly once, over the symbols in document order, and is the only
// writer of Symbol.proposedUni.
//
// Two counters, both seeded one below the reserved block:
//
//   - lastAssigned advances with every plain allocation, wherever it
//     lands.
//   - lastInBlock tracks the most recent allocation that fell inside the
//     reserved block, so a bare "+" continuation can resume there even
//     after pinned values moved lastAssigned elsewhere.
type allocator struct {
	lastAssigned int
	lastInBlock  int
}

func newAllocator() *allocator {
	return &allocator{
		lastAssigned: reservedBlockFirst - 1,
		lastInBlock:  reservedBlockFirst - 1,
	}
}

// allocate resolves the symbol's unicode annotation:
//
//	""       allocate lastAssigned+1
//	"+"      allocate lastInBlock+1 (continuation in the reserved block)
//	"+XXXX"  pinned: use XXXX verbatim, touch neither counter
//	"XXXX"   already standardized (also "*XXXX"): no proposed point
//
// The relative scheme only ever produces single code points; pinned
// sequences are stored verbatim and stay clear of the counters.
func (a *allocator) allocate(sym *Symbol) {
	raw := sym.rawUnicode
	switch {
	case raw == "":
		a.lastAssigned++
		a.assign(sym, a.lastAssigned)
	case raw == "+":
		a.lastInBlock++
		a.assign(sym, a.lastInBlock)
	case strings.HasPrefix(raw, "+"):
		sym.proposedUni = raw[1:]
	default:
		// Unified with an existing or upcoming character.
	}
}

func (a *allocator) assign(sym *Symbol, cp int) {
	sym.proposedUni = formatCodePoint(cp)
	// The reserved block end is an upper bound for the continuation
	// counter: allocations past it never feed back into lastInBlock.
	if reservedBlockFirst <= cp && cp <= reservedBlockLast {
		a.lastInBlock = cp
	}
}

func formatCodePoint(cp int) string {
	return fmt.Sprintf("%04X", cp)
}
