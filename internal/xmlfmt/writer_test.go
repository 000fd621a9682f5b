package xmlfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feed writes the chunks the way a DOM-style serializer would: tag heads,
// text and tails arrive as separate writes.
func feed(t *testing.T, chunks ...string) string {
	t.Helper()

	var b strings.Builder
	w := NewWriter(&b)
	for _, c := range chunks {
		_, err := w.Write([]byte(c))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return b.String()
}

func TestWriter_CollapsesLeafElement(t *testing.T) {
	// A leaf element whose text arrives with the serializer's leftover
	// indentation collapses onto one trimmed line.
	got := feed(t, "<ann", ">", "\n   = cloud\n  ", "</ann>\n")
	assert.Equal(t, "<ann>= cloud</ann>\n", got)
}

func TestWriter_EmptyElementKeepsOpenTagOnly(t *testing.T) {
	got := feed(t, "<ann></ann>\n")
	assert.Equal(t, "<ann>\n", got)
}

func TestWriter_SplitsBeforeNestedElement(t *testing.T) {
	got := feed(t, "<subcategory>", "<e id=\"000\"/>\n", "</subcategory>\n")
	assert.Equal(t, "<subcategory>\n<e id=\"000\"/>\n</subcategory>\n", got)
}

func TestWriter_MultiLineTextSplitsInThree(t *testing.T) {
	got := feed(t, "<desc>", "\n  first line\nsecond line\n", "</desc>\n")
	assert.Equal(t, "<desc>\nfirst line\nsecond line\n</desc>\n", got)
}

func TestWriter_DropsBlankLines(t *testing.T) {
	got := feed(t, "\n", "  \n", "<x/>\n", "\n")
	assert.Equal(t, "<x/>\n", got)
}

func TestWriter_QuoteFixup(t *testing.T) {
	// &quot; becomes a literal quote for readability...
	got := feed(t, "<ann>say &quot;cheese&quot;</ann>\n")
	assert.Equal(t, "<ann>say \"cheese\"</ann>\n", got)

	// ...except on raw symbol lines, which keep their escaping.
	got = feed(t, "<e id=\"000\" text_fallback=\"&quot;hi&quot;\"/>\n")
	assert.Equal(t, "<e id=\"000\" text_fallback=\"&quot;hi&quot;\"/>\n", got)
}

func TestWriter_EscapesUnsafeRunes(t *testing.T) {
	// Outside the safe ranges (ASCII, Latin-1, kana, CJK, fullwidth
	// forms) runes become numeric character references.
	got := feed(t, "<ann>♡ あ 亜 ！ café</ann>\n")
	assert.Equal(t, "<ann>&#x2661; あ 亜 ！ café</ann>\n", got)

	// Supplementary-plane runes keep their full value.
	got = feed(t, "<ann>\U0001F300</ann>\n")
	assert.Equal(t, "<ann>&#x1F300;</ann>\n", got)

	// The exemption covers raw symbol lines.
	got = feed(t, "<e id=\"000\" text_fallback=\"♡\"/>\n")
	assert.Equal(t, "<e id=\"000\" text_fallback=\"♡\"/>\n", got)
}

func TestWriter_TrimsPassthroughLines(t *testing.T) {
	got := feed(t, "   <category name=\"Weather\">  \n")
	assert.Equal(t, "<category name=\"Weather\">\n", got)
}

func TestWriter_CloseFlushesTail(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b)
	_, err := w.Write([]byte("<emoji4unicode>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, "<emoji4unicode>\n", b.String())
}

func TestWriter_ChunkBoundariesDoNotMatter(t *testing.T) {
	whole := feed(t, "<ann>= cloud</ann>\n<desc>text</desc>\n")
	pieces := feed(t, "<ann>= clo", "ud</a", "nn>\n<desc>", "text</desc>\n")
	assert.Equal(t, whole, pieces)
}
