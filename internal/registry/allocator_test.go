package registry

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const allocXML = `<emoji4unicode>
 <category name="C">
  <subcategory name="S">
   <e id="000" name="FIRST"/>
   <e id="001" name="SECOND"/>
   <e id="002" name="UNIFIED" unicode="2601"/>
   <e id="003" name="PINNED" unicode="+1F7D0"/>
   <e id="004" name="AFTER PIN"/>
   <e id="005" name="CONTINUATION" unicode="+"/>
   <e id="006" name="UPCOMING" unicode="*26C4"/>
   <e id="007" name="OUT" in_proposal="no"/>
   <e id="008" name="LAST"/>
  </subcategory>
 </category>
</emoji4unicode>`

func TestAllocator(t *testing.T) {
	r := mustBuild(t, allocXML)

	tests := []struct {
		id   string
		want string
	}{
		{"000", "1F300"}, // first allocation, one above the seed
		{"001", "1F301"},
		{"002", ""},      // unified, no proposed point
		{"003", "1F7D0"}, // pinned verbatim
		{"004", "1F302"}, // pin advanced neither counter
		{"005", "1F303"}, // "+" continues after the last in-block allocation
		{"006", ""},      // upcoming counts as standardized
		{"007", ""},      // not in the proposal
		{"008", "1F304"},
	}

	for _, tt := range tests {
		sym := r.SymbolByID(tt.id)
		require.NotNil(t, sym, tt.id)
		assert.Equal(t, tt.want, sym.ProposedUnicode(), "symbol %s", tt.id)
	}
}

func TestAllocator_Deterministic(t *testing.T) {
	first := mustBuild(t, allocXML)
	second := mustBuild(t, allocXML)

	for sym := range first.Symbols() {
		other := second.SymbolByID(sym.ID)
		require.NotNil(t, other)
		assert.Equal(t, sym.ProposedUnicode(), other.ProposedUnicode(), sym.ID)
	}
}

func TestAllocator_Monotonic(t *testing.T) {
	// With no pins and no continuations, proposed points strictly
	// increase by one per eligible symbol in document order.
	r := mustBuild(t, `<emoji4unicode>
 <category name="C">
  <subcategory name="S">
   <e id="000"/>
   <e id="001"/>
   <e id="002" unicode="2601"/>
   <e id="003"/>
  </subcategory>
 </category>
</emoji4unicode>`)

	assert.Equal(t, "1F300", r.SymbolByID("000").ProposedUnicode())
	assert.Equal(t, "1F301", r.SymbolByID("001").ProposedUnicode())
	assert.Equal(t, "1F302", r.SymbolByID("003").ProposedUnicode())
}

func TestAllocator_ContinuationResumesReservedBlock(t *testing.T) {
	// A pinned value outside the reserved block diverges lastAssigned
	// from the block counter; a later bare "+" must resume one past the
	// last in-block allocation, not one past the pin.
	r := mustBuild(t, `<emoji4unicode>
 <category name="C">
  <subcategory name="S">
   <e id="A"/>
   <e id="B" unicode="+2693"/>
   <e id="C" unicode="+"/>
  </subcategory>
 </category>
</emoji4unicode>`)

	assert.Equal(t, "1F300", r.SymbolByID("A").ProposedUnicode())
	assert.Equal(t, "2693", r.SymbolByID("B").ProposedUnicode())
	assert.Equal(t, "1F301", r.SymbolByID("C").ProposedUnicode())
}

func TestAllocator_PinnedSequenceVerbatim(t *testing.T) {
	// Pinned sequences are stored as-is and never touch the counters.
	r := mustBuild(t, `<emoji4unicode>
 <category name="C">
  <subcategory name="S">
   <e id="A" unicode="+0023+20E3"/>
   <e id="B"/>
  </subcategory>
 </category>
</emoji4unicode>`)

	assert.Equal(t, "0023+20E3", r.SymbolByID("A").ProposedUnicode())
	assert.Equal(t, "1F300", r.SymbolByID("B").ProposedUnicode())
}

func TestAllocator_DumpState(t *testing.T) {
	if testing.Short() {
		t.Skip("debug dump")
	}

	r := mustBuild(t, allocXML)

	var allocated []ByCodePoint
	for _, pair := range r.SymbolsByCodePoint(true) {
		if pair.Symbol.ProposedUnicode() != "" {
			allocated = append(allocated, pair)
		}
	}
	spew.Dump(allocated)

	assert.NotEmpty(t, allocated)
}
