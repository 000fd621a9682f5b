package gen

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emoji4unicode/internal/age"
)

const chartXML = `<emoji4unicode>
 <category name="Weather">
  <subcategory name="Sky">
   <e id="000" name="FINE" docomo="E63E" kddi="E488" img_from="docomo"/>
   <e id="001" name="CLOUDY" unicode="2601" docomo="E63F" kddi=">E48C">
    <ann> = cloud </ann>
   </e>
   <e id="002" name="SNOWMAN" unicode="26C4" softbank="E04A" text_fallback="[snow]"/>
  </subcategory>
  <subcategory name="Comparison" in_proposal="no">
   <e id="003" name="OLD MOON" kddi="E48C"/>
  </subcategory>
 </category>
</emoji4unicode>`

func testAges(t *testing.T) *age.Table {
	t.Helper()

	table, err := age.Parse(strings.NewReader(`
2601..2704 ; 1.1 # dingbats
26C4..26C4 ; 5.2 # snowman
1F300..1F5FF ; 6.0 # pictographs
`))
	require.NoError(t, err)

	return table
}

func renderChart(t *testing.T, src string, opt ChartOptions) string {
	t.Helper()

	reg, carriers := buildRegistry(t, src, nil)
	var out bytes.Buffer
	date := time.Date(2009, time.June, 1, 0, 0, 0, 0, time.UTC)
	err := WriteChart(&out, reg, carriers, testAges(t), date, opt)
	require.NoError(t, err)

	return out.String()
}

func TestWriteChart_DocumentOrder(t *testing.T) {
	got := renderChart(t, chartXML, ChartOptions{})

	assert.Contains(t, got, "Date: 2009-Jun-01")
	assert.Contains(t, got, "<td class='category' colspan=7>Weather</td>")
	assert.Contains(t, got, "<td class='subcategory' colspan=7>Sky (Weather)</td>")

	// Row anchors, one per symbol.
	assert.Contains(t, got, "<tr id=e-000>")
	assert.Contains(t, got, "<a href=#e-000>e-000</a>")

	// Out-of-proposal rows are struck through.
	assert.Contains(t, got, "<tr id=e-003 class=not_in_proposal>")

	// Proposed symbol: allocated code point in red, "proposed" status.
	assert.Contains(t, got, "<span class='proposed_uni'>U+1F300</span>")
	assert.Contains(t, got, "<span class='status'>proposed</span>")

	// Unified symbol: real code point with its age-derived status.
	assert.Contains(t, got, "U+2601")
	assert.Contains(t, got, "unified (Unicode&nbsp;1.1)")

	// Mapping cells: round trip, fallback, and text fallback with the
	// explicit fallback text.
	assert.Contains(t, got, "<td class='round_trip'>")
	assert.Contains(t, got, "<td class='fallback'>")
	assert.Contains(t, got, "<td class='text_fallback'>[snow]</td>")
	// Absent text_fallback renders the geta mark.
	assert.Contains(t, got, "<td class='text_fallback'>〓</td>")

	assert.Contains(t, got, "Number of symbols in this chart: 4")
	assert.Contains(t, got, "Number of symbols unified with existing Unicode characters: 2")
	assert.Contains(t, got, "Number of proposed new symbols: 1")
}

func TestWriteChart_CarrierCellDetail(t *testing.T) {
	got := renderChart(t, chartXML, ChartOptions{})

	// DoCoMo round-trip cell for e-000: image, number, names,
	// transliteration of the Japanese name, and codes.
	assert.Contains(t, got, "<img src=http://docomo.example/E63E.gif>")
	assert.Contains(t, got, "#1")
	assert.Contains(t, got, "'Fine'")
	assert.Contains(t, got, "晴れ")
	assert.Contains(t, got, "「晴re」")
	assert.Contains(t, got, "U+E63E")
	assert.Contains(t, got, "SJIS-F89F")
	assert.Contains(t, got, "JIS-7541")
}

func TestWriteChart_EncodedStatusFromAge(t *testing.T) {
	got := renderChart(t, `<emoji4unicode>
 <category name="Symbols">
  <subcategory name="Pictographs">
   <e id="000" name="CYCLONE" unicode="1F300" docomo="E63E"/>
  </subcategory>
 </category>
</emoji4unicode>`, ChartOptions{})

	// Unicode 6.0 and later count as encoded rather than unified.
	assert.Contains(t, got, "encoded (Unicode&nbsp;6.0)")
}

func TestWriteChart_AllocatedPointStaysProposed(t *testing.T) {
	// e-000 has no unicode attribute, only an allocated point. It must
	// keep the proposed rendering even though the age table already
	// lists the 1F300 block.
	got := renderChart(t, chartXML, ChartOptions{})

	assert.Contains(t, got, "<span class='proposed_uni'>U+1F300</span>")
	assert.Contains(t, got, "<span class='status'>proposed</span>")
	assert.NotContains(t, got, "🌀")
	assert.NotContains(t, got, "encoded (Unicode&nbsp;6.0)")
}

func TestWriteChart_OnlyInProposalDropsComparisonRows(t *testing.T) {
	got := renderChart(t, chartXML, ChartOptions{OnlyInProposal: true})

	assert.NotContains(t, got, "e-003")
	assert.NotContains(t, got, "Comparison")
	assert.Contains(t, got, "Number of symbols in this chart: 3")
}

func TestWriteChart_NoUnified(t *testing.T) {
	got := renderChart(t, chartXML, ChartOptions{NoUnified: true})

	assert.NotContains(t, got, "e-001")
	assert.NotContains(t, got, "e-002")
	assert.Contains(t, got,
		"unified with existing Unicode characters: None shown in this chart.")
}

func TestWriteChart_DesignView(t *testing.T) {
	got := renderChart(t, chartXML, DesignChartOptions())

	// Only the proposed symbol remains, rendered with the proposal
	// font glyph, and every mapping cell is reduced to a dash.
	assert.Contains(t, got, "e-000")
	assert.NotContains(t, got, "e-001")
	assert.Contains(t, got, "<span class='efont'></span>")
	assert.NotContains(t, got, "SJIS-")
	assert.Contains(t, got, "<td class='no_mapping'>-</td>")
}

func TestWriteChart_ByCodePointGroupsBySubcategory(t *testing.T) {
	got := renderChart(t, chartXML, ChartOptions{ByCodePoint: true})

	// Unified code points sort before the allocated block, so e-001
	// (2601) appears before e-000 (1F300).
	first := strings.Index(got, "<tr id=e-001")
	second := strings.Index(got, "<tr id=e-000")
	require.Positive(t, first)
	require.Positive(t, second)
	assert.Less(t, first, second)

	assert.Contains(t, got, "<td class='subcategory' colspan=7>Sky</td>")
}

func TestWriteChart_AnnotationsAreEscaped(t *testing.T) {
	got := renderChart(t, `<emoji4unicode>
 <category name="People">
  <subcategory name="Faces">
   <e id="000" name="SORRY" docomo="E63E">
    <ann> = kao moji (&gt;人&lt;) </ann>
   </e>
  </subcategory>
 </category>
</emoji4unicode>`, ChartOptions{})

	assert.Contains(t, got, "= kao moji (&gt;人&lt;)")
}

func TestWriteChart_NilAgeTable(t *testing.T) {
	reg, carriers := buildRegistry(t, chartXML, nil)

	var out bytes.Buffer
	err := WriteChart(&out, reg, carriers, nil, time.Now(), ChartOptions{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "<span class='status'>unified</span>")
}
