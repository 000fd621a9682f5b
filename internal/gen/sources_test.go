package gen

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emoji4unicode/internal/carrier"
	"emoji4unicode/internal/registry"
)

func testCarriers() *carrier.Set {
	docomo := carrier.NewCatalog("docomo", []*carrier.Symbol{
		{Uni: "E63E", Number: 1, ShiftJIS: "F89F", JIS: "7541", NameEn: "Fine", NameJa: "晴れ"},
		{Uni: "E63F", Number: 2, ShiftJIS: "F8A0", JIS: "7542", NameEn: "Cloudy", NameJa: "曇り"},
		{Uni: "E6A1", Number: 380, NameEn: "Dog", NameJa: "犬"}, // no Shift-JIS published
	}, func(s *carrier.Symbol) string { return "http://docomo.example/" + s.Uni + ".gif" })

	kddi := carrier.NewCatalog("kddi", []*carrier.Symbol{
		{Uni: "E488", Number: 44, ShiftJIS: "F660", NameEn: "Sun", NameJa: "太陽"},
		{Uni: "E48C", Number: 48, ShiftJIS: "F664", NameEn: "Moon", NameJa: "月"},
	}, func(s *carrier.Symbol) string { return "http://kddi.example/" + s.Uni + ".gif" })

	softbank := carrier.NewCatalog("softbank", []*carrier.Symbol{
		{Uni: "E04A", NewNumber: 74, ShiftJIS: "F98B", NameEn: "Sun"},
	}, nil)

	google := carrier.NewCatalog("google", []*carrier.Symbol{
		{Uni: "FE000"},
		{Uni: "FE001"},
	}, carrier.GoogleImageURL)

	return carrier.NewSet(docomo, kddi, softbank, google)
}

func buildRegistry(t *testing.T, src string, logger *slog.Logger) (*registry.Registry, *carrier.Set) {
	t.Helper()

	doc, err := registry.Parse(strings.NewReader(src))
	require.NoError(t, err)

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	carriers := testCarriers()
	reg, err := registry.Build(doc, registry.Env{Carriers: carriers, Logger: logger})
	require.NoError(t, err)

	return reg, carriers
}

const sourcesXML = `<emoji4unicode>
 <category name="Weather">
  <subcategory name="Sky">
   <e id="000" name="FINE" docomo="E63E" kddi="E488"/>
   <e id="001" name="CLOUDY" unicode="2601" docomo="E63F"/>
   <e id="002" name="SNOWMAN" unicode="26C4" softbank="E04A" kddi=">E48C"/>
   <e id="003" name="LOOP" unicode="27BF" docomo="E63E"/>
   <e id="004" name="GOOGLE ONLY" google="FE000"/>
   <e id="005" name="NOT PROPOSED" in_proposal="no" docomo="E63E"/>
  </subcategory>
 </category>
</emoji4unicode>`

func TestWriteSources_Layout(t *testing.T) {
	reg, carriers := buildRegistry(t, sourcesXML, nil)

	var out bytes.Buffer
	date := time.Date(2009, time.June, 1, 0, 0, 0, 0, time.UTC)
	err := WriteSources(&out, reg, carriers, date, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	got := out.String()

	assert.True(t, strings.HasPrefix(got, "# EmojiSources.txt\n# Date: 2009-06-01\n"))
	assert.True(t, strings.HasSuffix(got, "\n# EOF\n"))

	var rows []string
	for _, line := range strings.Split(got, "\n") {
		if line != "" && !strings.HasPrefix(line, "#") {
			rows = append(rows, line)
		}
	}
	// Ordered by code point: the standardized symbols first, then the
	// proposed one. The fallback-only, google-only, skipped and
	// out-of-proposal symbols have no row.
	assert.Equal(t, []string{
		"2601;F8A0;;",
		"26C4;;;F98B",
		"1F300;F89F;F660;",
	}, rows)
}

func TestWriteSources_SequenceSpellsCodePointsWithSpaces(t *testing.T) {
	reg, carriers := buildRegistry(t, `<emoji4unicode>
 <category name="Enclosed">
  <subcategory name="Keys">
   <e id="000" name="HASH KEY" unicode="0023+20E3" softbank="E04A"/>
  </subcategory>
 </category>
</emoji4unicode>`, nil)

	var out bytes.Buffer
	err := WriteSources(&out, reg, carriers, time.Now(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "0023 20E3;;;F98B\n")
}

func TestWriteSources_MissingShiftJISWarnsAndLeavesFieldEmpty(t *testing.T) {
	reg, carriers := buildRegistry(t, `<emoji4unicode>
 <category name="Animals">
  <subcategory name="Pets">
   <e id="000" name="DOG" docomo="E6A1"/>
  </subcategory>
 </category>
</emoji4unicode>`, nil)

	var logged bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logged, nil))

	var out bytes.Buffer
	err := WriteSources(&out, reg, carriers, time.Now(), logger)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "1F300;;;\n")
	assert.Contains(t, logged.String(), "missing Shift-JIS code")
	assert.Contains(t, logged.String(), "E6A1")
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/generated"
	require.NoError(t, WriteFile(dir, "EmojiSources.txt", []byte("# EOF\n")))

	got, err := os.ReadFile(filepath.Join(dir, "EmojiSources.txt"))
	require.NoError(t, err)
	assert.Equal(t, "# EOF\n", string(got))
}
