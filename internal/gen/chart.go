package gen

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"

	"emoji4unicode/internal/age"
	"emoji4unicode/internal/carrier"
	"emoji4unicode/internal/registry"
	"emoji4unicode/internal/translit"
)

// ChartOptions selects what the background chart shows.
type ChartOptions struct {
	// OnlyInProposal drops symbols, subcategories and categories that
	// are not part of the proposal.
	OnlyInProposal bool

	// NoUnified drops symbols unified with existing characters.
	NoUnified bool

	// NoTempNotes hides old names, descriptions and design notes.
	NoTempNotes bool

	// NoFallbacks replaces fallback cells with a plain dash.
	NoFallbacks bool

	// NoCodes hides carrier Unicode, Shift-JIS and JIS codes.
	NoCodes bool

	// NoSymbolNumbers hides carrier catalog numbers.
	NoSymbolNumbers bool

	// ShowFontChars renders the proposal font glyph (from the private
	// use area font) next to the representative image.
	ShowFontChars bool

	// ShowOnlyFontChars renders only the proposal font glyph.
	ShowOnlyFontChars bool

	// ShowRealChars renders the real character instead of an image.
	ShowRealChars bool

	// ByCodePoint orders rows by code point instead of document order,
	// with subcategory banners at each transition.
	ByCodePoint bool
}

// DesignChartOptions is the preset for the font-design review chart:
// proposed symbols only, glyphs shown, all chart noise suppressed.
func DesignChartOptions() ChartOptions {
	return ChartOptions{
		OnlyInProposal:  true,
		NoUnified:       true,
		NoFallbacks:     true,
		NoCodes:         true,
		NoSymbolNumbers: true,
		ShowFontChars:   true,
	}
}

const chartCSS = `
<style>
body {
  font-family: Arial, Helvetica, Sans-serif;
}
.category {
  font-weight: bold;
  font-size: 110%;
  background: #C8C8C8;
}
.subcategory {
  font-weight: bold;
  background: #EEE;
}
.not_in_proposal {
  text-decoration: line-through;
}
.id {
  text-align: center;
}
.code_point {
  text-align: center;
}
.rep {
  text-align: center;
}
.unified {
  font-size: 36pt;
}
.upcoming {
  font-size: 24pt;
  font-stretch: ultra-condensed;
  font-style: italic;
}
.proposed_uni {
  color: red
}
.fontimg {
  height: 40;
  width: 40;
}
.efont {
  font-family: Apple Emoji;
  font-size: 36pt;
}
.chartfonts {
  font-family: Uni2300Mistechnical,Uni2600Miscsymbols,Uni1F0A0Playingcards,
               Uni1F100Enclosedsupplement,Uni1F300Mispictographics,
               Uni1F600Emoticons,Uni1F680Transport;
  font-size: 36pt;
}
.status {
  font-size: 60%;
}
.old_name {
  font-weight: bold;
  color: red
}
.name_anno {
  font-size: 80%;
}
.arib {
  color: gray;
}
.desc {
  color: gray;
}
.design {
  color: gray;
}
.pua, .imgs, .translit {
  text-align: center;
}
.num {
  text-align: right;
}
.round_trip {
}
.fallback {
  background:#FFCC00;
  border-style: dotted;
  border-width: 2px
}
.text_fallback {
  background:#CC99FF;
}
.no_mapping {
}
.report {
  font-weight: bold;
}
</style>
`

const chartTableHeader = `
<table border='1' cellspacing='0' width='100%'>
<tr>
 <th>Internal ID</th>
 <th>Symbol</th>
 <th>Name &amp; Annotations</th>
 <th>DoCoMo</th>
 <th>KDDI</th>
 <th>SoftBank</th>
 <th>Google</th>
</tr>
`

var chartHeader = template.Must(template.New("chartHeader").Parse(`<html>
<title>Emoji Symbols: Background Data</title>
<head>
<meta http-equiv='Content-Type' content='text/html; charset=UTF-8'>
` + chartCSS + `
</head>
<body>
<h1>Emoji Symbols: Background Data</h1>
<p align='right'>
  Date: {{.Date}}</p>
<p>The carrier symbol images in this file point to images on other sites.
  The images are only for comparison and may change.</p>
<p>See the <a href="#legend">chart legend</a>
  for an explanation of the data presentation in this chart.</p>
<p>In the HTML version of this document,
  each symbol row has an anchor to allow direct linking by appending
  <a href="#e-4B0">#e-4B0</a> (for example) to this page's URL in the
  address bar.</p>
` + chartTableHeader))

const chartFooter = `
<h2 id='legend'>Chart Legend</h2>
Columns:<br>
<ol><li>Internal ID: A unique identifier used only in the encoding proposal and discussion. The IDs mostly follow the order of the symbols in the chart, but only for historical reasons, and some symbols have been moved while preserving their IDs. This is so that the IDs can serve as permanent identifiers throughout the review and proposal process.<br>
</li>
<li>Symbol: The symbol glyph, the code point, and its status.</li>
<ul><li>For a symbol proposed for new encoding, the proposed representative glyph is shown, the proposed code point is red, and the status text is "proposed".</li>
<li>For a symbol unified with an existing Unicode character, the code point is black and the status text is "unified". The glyph may differ from the Unicode chart glyph. In some cases, a symbol is unified with a sequence of existing characters.<br>
</li></ul>
<li>Name &amp; Annotations: The proposed character name for new symbols, or the name of the
existing or upcoming unified character. Optionally followed by further
information, if applicable:</li>
<ul>
<li>The old name, which is the character name proposed in a previous version of the document.</li>
<li>The ARIB code (4-decimal-digit row-cell code) of the corresponding <a href="http://sites.google.com/site/unicodesymbols/Home/japanese-tv-symbols">Japanese Broadcast Symbol</a>.</li>
<li>Proposed Unicode character annotations.</li>
<li>Free-form description text.</li>
<li>Font design instructions.<br>
</li></ul>
<li>DoCoMo/KDDI/SoftBank/Google: These columns show how each symbol maps to equivalent or similar symbols used by other companies.</li>
<ul><li>The table cell shows some or all of the following about each carrier's symbol:<br>
</li></ul>
<ul>
<ul><li>An image</li>
<li>A catalog number prefixed with '#'</li>
<ul><li>For SoftBank, these are the "new", post-June 2008 symbol numbers. "Old", pre-June 2008 symbol numbers are prefixed with '#old'.<br>
</li>
<li>For DoCoMo, numbers for "expansion" symbols are prefixed with '#Exp.'<br>
</li></ul>
<li>The English symbol name</li>
<li>The Japanese symbol name</li>
<li>A partial transliteration of the Japanese name if it contains Hiragana or Katakana<br>
</li>
<li>The Unicode Private Use Area (PUA) code point</li>
<li>The Shift-JIS code<br>
</li>
<li>The ISO 2022-JP code (based on JIS X 0208)</li></ul>
<li>If the carrier's symbol is not equivalent, the table cell may show a best-fit fallback mapping (one-way from proposal symbol ID to the carrier) to a carrier symbol or to a sequence of symbols.</li>
<ul><li>In this case, the table cell has golden background and a dotted cell border.</li>
<li>Sequences of codes are marked with + signs as separators.</li></ul>
<li>If there is no equivalent nor similar symbol, the table cell may show fallback text.</li>
<ul><li>In this case, the table cell has purple background, and there is no other information besides the fallback text. (In particular, no image.)</li>
<li>Types of text fallbacks:</li>
<ul><li>Fallback mappings to descriptive text rather than a symbol.</li>
<li>Fallback text to "ASCII art" (Kao Moji). Such
"ASCII art" may include fullwidth ASCII, Greek, Cyrillic and Han
characters; essentially anything available elsewhere in the character
set.</li>
<li>Fallback to the Geta Mark '〓' (U+3013).</li></ul></ul></ul>
</ol>
The carrier symbol images point to images on other sites. The images are only for comparison and may change.<br>
</body></html>`

// WriteChart renders the background chart for the loaded registry as one
// self-contained HTML page. ages may be nil; symbols then report no
// encoding status version.
func WriteChart(w io.Writer, reg *registry.Registry, carriers *carrier.Set,
	ages *age.Table, date time.Time, opt ChartOptions) error {
	c := &chartWriter{
		bw:       bufio.NewWriter(w),
		reg:      reg,
		carriers: carriers,
		ages:     ages,
		opt:      opt,
	}

	if err := chartHeader.Execute(c.bw, struct{ Date string }{date.Format("2006-Jan-02")}); err != nil {
		return err
	}

	var err error
	if opt.ByCodePoint {
		err = c.writeByCodePoint()
	} else {
		err = c.writeDocumentOrder()
	}
	if err != nil {
		return err
	}

	c.bw.WriteString("</table>\n")
	c.writeReports()
	c.bw.WriteString(chartFooter)

	return c.bw.Flush()
}

type chartWriter struct {
	bw       *bufio.Writer
	reg      *registry.Registry
	carriers *carrier.Set
	ages     *age.Table
	opt      ChartOptions

	inChart int
	unified int
	newSyms int
}

func (c *chartWriter) writeDocumentOrder() error {
	for _, cat := range c.reg.Categories() {
		banner := cat.Name
		if !cat.InProposal {
			if c.opt.OnlyInProposal {
				continue
			}
			banner += " (This section is for comparison only -- " +
				"not part of the proposal.)"
		}
		c.singleCelledRow("category", banner)
		for _, sub := range cat.Subcategories() {
			var symbols []*registry.Symbol
			for _, sym := range sub.Symbols() {
				if !c.count(sym) {
					continue
				}
				symbols = append(symbols, sym)
			}
			if len(symbols) > 0 {
				c.singleCelledRow("subcategory",
					fmt.Sprintf("%s (%s)", sub.Name, cat.Name))
				if err := c.writeSymbolRows(symbols); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (c *chartWriter) writeByCodePoint() error {
	prevSubcategory := ""
	var pending []*registry.Symbol
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		c.singleCelledRow("subcategory", prevSubcategory)
		err := c.writeSymbolRows(pending)
		pending = pending[:0]
		return err
	}

	for _, entry := range c.reg.SymbolsByCodePoint(false) {
		sym := entry.Symbol
		if c.opt.OnlyInProposal && !sym.InProposal {
			continue
		}
		if name := sym.Subcategory.Name; name != prevSubcategory {
			if err := flush(); err != nil {
				return err
			}
			prevSubcategory = name
		}
		if !c.count(sym) {
			continue
		}
		pending = append(pending, sym)
	}

	return flush()
}

// count applies the unified/in-proposal filters and updates the report
// counters; it reports whether the symbol belongs in the chart.
func (c *chartWriter) count(sym *registry.Symbol) bool {
	if c.opt.OnlyInProposal && !sym.InProposal {
		return false
	}
	if sym.Unicode() != "" {
		if c.opt.NoUnified {
			return false
		}
		c.unified++
	} else if sym.InProposal {
		c.newSyms++
	}
	c.inChart++

	return true
}

func (c *chartWriter) writeReports() {
	fmt.Fprintf(c.bw, "<p class='report'>Number of symbols in this chart: %d</p>\n",
		c.inChart)
	if c.opt.NoUnified {
		c.bw.WriteString("<p class='report'>Number of symbols unified with existing " +
			"Unicode characters: None shown in this chart.</p>\n")
	} else {
		fmt.Fprintf(c.bw, "<p class='report'>Number of symbols unified with existing "+
			"Unicode characters: %d</p>\n", c.unified)
	}
	fmt.Fprintf(c.bw, "<p class='report'>Number of proposed new symbols: %d</p>\n",
		c.newSyms)
}

func (c *chartWriter) writeSymbolRows(symbols []*registry.Symbol) error {
	for _, sym := range symbols {
		rowStyle := ""
		if !sym.InProposal {
			rowStyle = " class=not_in_proposal"
		}
		eID := "e-" + sym.ID
		fmt.Fprintf(c.bw, "<tr id=%s%s><td class='id'><a href=#%s>%s</a></td>",
			eID, rowStyle, eID, eID)
		fmt.Fprintf(c.bw, "<td class='rep'>%s</td>", c.representationHTML(sym))
		fmt.Fprintf(c.bw, "<td class='name_anno'>%s</td>", c.nameAnnotationHTML(sym))
		for _, name := range carrier.Names {
			if err := c.writeCarrierCell(sym, name); err != nil {
				return err
			}
		}
		c.bw.WriteString("</tr>\n")
	}

	return nil
}

func (c *chartWriter) writeCarrierCell(sym *registry.Symbol, name string) error {
	m, err := sym.CarrierMapping(name)
	if err != nil {
		return err
	}

	switch {
	case m.Kind == registry.Fallback && c.opt.NoFallbacks,
		m.Kind == registry.NoMapping && c.opt.NoFallbacks:
		c.bw.WriteString("<td class='no_mapping'>-</td>")
	case m.Kind == registry.Fallback:
		fmt.Fprintf(c.bw, "<td class='fallback'>%s</td>",
			c.carrierCellHTML(name, m.Code))
	case m.Kind == registry.RoundTrip:
		fmt.Fprintf(c.bw, "<td class='round_trip'>%s</td>",
			c.carrierCellHTML(name, m.Code))
	default:
		text := sym.TextFallback()
		if text == "" {
			text = "〓" // geta mark
		}
		fmt.Fprintf(c.bw, "<td class='text_fallback'>%s</td>", text)
	}

	return nil
}

// representationHTML renders the glyph-and-code-point cell.
func (c *chartWriter) representationHTML(sym *registry.Symbol) string {
	uni := sym.Unicode()
	if uni != "" {
		var repr string
		switch {
		case c.opt.ShowRealChars:
			repr = unicodeHTML(uni, "chartfonts")
		case sym.IsUpcoming() && !c.opt.ShowFontChars:
			// Code points plus a chart scan; no one has fonts for
			// upcoming characters yet.
			repr = fmt.Sprintf("<img src='../uni52img/U+%s.jpg' class='fontimg'>", uni) +
				"<br>U+" + strings.ReplaceAll(uni, "+", " U+")
		default:
			repr = unicodeHTML(uni, "unified")
		}
		if v, ok := c.age(uni); ok {
			status := "unified"
			if v.Compare(age.Version{Major: 6}) >= 0 {
				status = "encoded"
			}
			return repr + "<br><span class='status'>" + status +
				" (Unicode&nbsp;" + v.String() + ")</span>"
		}
		return repr + "<br><span class='status'>unified</span>"
	}

	img := sym.ImageHTML()
	fontImg := fmt.Sprintf("<img src='../fontimg/AEmoji_%s.png' class='fontimg'>",
		sym.FontCodePoint())
	if sym.InProposal {
		proposedUni := sym.ProposedUnicode()
		var repr string
		switch {
		case c.opt.ShowRealChars && proposedUni != "":
			repr = fmt.Sprintf("<span class='chartfonts'>%s</span>",
				codePointString(proposedUni))
		case c.opt.ShowOnlyFontChars:
			repr = fmt.Sprintf("<span class='efont'>%s</span>",
				codePointString(sym.FontCodePoint()))
		case c.opt.ShowFontChars:
			repr = fmt.Sprintf("<span class='efont'>%s</span>=%s",
				codePointString(sym.FontCodePoint()), fontImg)
			if img != "" {
				repr += "≈" + img
			}
		default:
			repr = fontImg
		}
		if proposedUni != "" {
			repr += "<br><span class='proposed_uni'>U+" +
				strings.ReplaceAll(proposedUni, "+", " U+") + "</span>"
		} else {
			repr += "<br><span class='proposed_uni'>U+xxxxx</span>"
		}
		return repr + "<br><span class='status'>proposed</span>"
	}
	if img != "" {
		return img
	}
	if text := sym.TextRepr(); text != "" {
		return text
	}

	return "?repr?"
}

func (c *chartWriter) age(uni string) (age.Version, bool) {
	if c.ages == nil {
		return age.Version{}, false
	}
	return c.ages.Age(uni)
}

// nameAnnotationHTML renders the name cell with its annotation lines.
func (c *chartWriter) nameAnnotationHTML(sym *registry.Symbol) string {
	lines := []string{sym.Name()}
	if old := sym.OldName(); old != "" && !c.opt.NoTempNotes {
		lines = append(lines, "<span class='old_name'>Old name: "+old+"</span>")
	}
	if arib := sym.ARIB(); arib != "" {
		lines = append(lines, "<span class='arib'>= ARIB-"+arib+"</span>")
	}
	if sym.IsUpcoming() && !c.opt.NoTempNotes {
		lines = append(lines, "<span class='desc'>Temporary Note: "+
			"Unified with an upcoming Unicode 5.2/AMD6 character; "+
			"code point and name are preliminary.</span>")
	}
	if prop := sym.ProposedProperties(); prop != "" {
		lines = append(lines, "Proposed Properties: "+prop)
	}
	for _, ann := range sym.Annotations() {
		lines = append(lines, escapeHTML(ann))
	}
	if !c.opt.NoTempNotes {
		if desc := sym.Description(); desc != "" {
			lines = append(lines, "<span class='desc'>Temporary Notes: "+
				escapeHTML(desc)+"</span>")
		}
		if design := sym.Design(); design != "" {
			lines = append(lines, "<span class='desc'>Design Note: "+
				escapeHTML(design)+"</span>")
		}
	}

	return strings.Join(lines, "<br>")
}

// carrierCellHTML renders the detail cell for one carrier mapping, which
// may be a sequence of vendor codes.
func (c *chartWriter) carrierCellHTML(name, codeString string) string {
	catalog, err := c.carriers.Catalog(name)
	if err != nil {
		// Carrier names come from the fixed column set.
		panic(err)
	}

	codes := strings.Split(codeString, "+")
	var imgs, numbers, oldNumbers, newNumbers []string
	var english, japanese, xlits []string
	var unis, shiftJISCodes, jisCodes []string
	for _, code := range codes {
		vendorSym := catalog.SymbolFromUnicode(code)
		if vendorSym == nil {
			continue
		}
		if img := c.reg.CarrierImageHTML(name, vendorSym); img != "" {
			imgs = append(imgs, img)
		}
		if !c.opt.NoSymbolNumbers {
			if vendorSym.Number != 0 {
				if name == "docomo" && vendorSym.Number >= 300 {
					// DoCoMo publishes "Expansion Pictograms" as
					// Exp.1..Exp.76; the catalog stores them offset
					// by 300.
					numbers = append(numbers,
						fmt.Sprintf("#Exp.%d", vendorSym.Number-300))
				} else {
					numbers = append(numbers, fmt.Sprintf("#%d", vendorSym.Number))
				}
			}
			if vendorSym.OldNumber != 0 {
				oldNumbers = append(oldNumbers, fmt.Sprintf("#old%d", vendorSym.OldNumber))
			}
			if vendorSym.NewNumber != 0 {
				newNumbers = append(newNumbers, fmt.Sprintf("#new%d", vendorSym.NewNumber))
			}
		}
		if vendorSym.NameEn != "" {
			english = append(english, "'"+vendorSym.NameEn+"'")
		}
		if vendorSym.NameJa != "" {
			japanese = append(japanese, vendorSym.NameJa)
			xlits = append(xlits, translit.Transliterate(vendorSym.NameJa))
		}
		if !c.opt.NoCodes {
			unis = append(unis, "U+"+code)
			if vendorSym.ShiftJIS != "" {
				shiftJISCodes = append(shiftJISCodes, "SJIS-"+vendorSym.ShiftJIS)
			}
			if vendorSym.JIS != "" {
				jisCodes = append(jisCodes, "JIS-"+vendorSym.JIS)
			}
		}
	}

	// The transliteration line is only worth showing when it differs
	// from the Japanese names themselves.
	var xlit string
	if len(xlits) > 0 && !slices.Equal(xlits, japanese) {
		xlit = "「" + strings.Join(xlits, "」+「") + "」"
	}

	join := func(parts []string) string { return strings.Join(parts, "+") }
	var pieces []string
	if len(codes) == 1 {
		// Reduce the cell height by putting multiple data pieces on
		// each line.
		groups := [][]string{
			{join(imgs), join(numbers), join(oldNumbers), join(newNumbers)},
			{join(english), join(japanese), xlit},
			{join(unis)},
			{join(shiftJISCodes), join(jisCodes)},
		}
		for _, group := range groups {
			kept := slices.DeleteFunc(slices.Clone(group), func(s string) bool {
				return s == ""
			})
			if len(kept) > 0 {
				pieces = append(pieces, strings.Join(kept, " "))
			}
		}
	} else {
		// For code sequences, use a line per type of data.
		for _, line := range []string{
			join(imgs), join(numbers), join(oldNumbers), join(newNumbers),
			join(english), join(japanese), xlit,
			join(unis), join(shiftJISCodes), join(jisCodes),
		} {
			if line != "" {
				pieces = append(pieces, line)
			}
		}
	}
	if len(pieces) == 0 {
		// Show *something* even with every detail suppressed.
		return "-"
	}

	return strings.Join(pieces, "<br>")
}

func (c *chartWriter) singleCelledRow(style, contents string) {
	fmt.Fprintf(c.bw, "<tr><td class='%s' colspan=7>%s</td></tr>\n", style, contents)
}

// unicodeHTML turns "0041+005A" into the characters plus their "U+"
// code point list.
func unicodeHTML(uni, style string) string {
	var chars, codePoints strings.Builder
	for _, code := range strings.Split(uni, "+") {
		chars.WriteString(codePointString(code))
		codePoints.WriteString(" U+" + code)
	}

	return "<span class='" + style + "'>" + chars.String() + "</span><br>" +
		codePoints.String()[1:]
}

func codePointString(hex string) string {
	cp, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ""
	}

	return string(rune(cp))
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
