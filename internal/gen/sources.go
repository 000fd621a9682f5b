package gen

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"emoji4unicode/internal/carrier"
	"emoji4unicode/internal/registry"
)

const sourcesHeader = `# EmojiSources.txt
# Date: %s
#
# Unicode Character Database
# Copyright (c) 1991-2011 Unicode, Inc.
# For terms of use, see http://www.unicode.org/terms_of_use.html
# For documentation, see http://www.unicode.org/reports/tr44/
#
# This file provides mappings between Unicode code points and sequences on one hand
# and Shift-JIS codes for cell phone carrier symbols on the other hand.
# Each mapping is symmetric ("round trip"), for equivalent Unicode and carrier
# symbols or sequences. This file does not include best-fit ("fallback")
# mappings to similar but not equivalent symbols in either mapping direction.
#
# Note: It is possible that future versions of this file will include
# additional data columns providing mappings for additional vendors.
#
# Created for Unicode 6.0 by Markus Scherer.
#
# Format: Semicolon-delimited file with a fixed number of fields.
# The number of fields may increase in the future.
#
# Fields:
# 0: Unicode code point or sequence
# 1: DoCoMo Shift-JIS code
# 2: KDDI Shift-JIS code
# 3: SoftBank Shift-JIS code
#
# Each field 1..3 contains a code if and only if the vendor character set
# has a symbol which is equivalent to the Unicode character or sequence.

`

const sourcesFooter = "\n# EOF\n"

// DOUBLE CURLY LOOP is already carried by a legacy vendor standard and is
// omitted from the data file.
const doubleCurlyLoop = "27BF"

// sourcesCarriers are the vendors with a column in the data file, in
// column order.
var sourcesCarriers = []string{"docomo", "kddi", "softbank"}

// WriteSources renders the cross-mapping data file: one row per
// in-proposal symbol with at least one equivalent carrier code, ordered
// by code point. A round-trip mapping whose vendor catalog lacks a
// Shift-JIS code leaves its field empty and logs a warning.
func WriteSources(w io.Writer, reg *registry.Registry, carriers *carrier.Set,
	date time.Time, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, sourcesHeader, date.Format("2006-01-02"))

	for _, entry := range reg.SymbolsByCodePoint(true) {
		sym := entry.Symbol
		uni := sym.Unicode()
		if uni == "" {
			uni = sym.ProposedUnicode()
		}
		if uni == doubleCurlyLoop {
			continue
		}

		fields := make([]string, 0, 1+len(sourcesCarriers))
		fields = append(fields, strings.ReplaceAll(uni, "+", " "))
		hasMappings := false
		for _, name := range sourcesCarriers {
			m, err := sym.CarrierMapping(name)
			if err != nil {
				return err
			}
			if m.Kind != registry.RoundTrip {
				fields = append(fields, "")
				continue
			}
			hasMappings = true
			fields = append(fields, shiftJIS(carriers, name, m.Code, sym.ID, logger))
		}
		if hasMappings {
			fmt.Fprintln(bw, strings.Join(fields, ";"))
		}
	}

	bw.WriteString(sourcesFooter)

	return bw.Flush()
}

// shiftJIS resolves a round-trip carrier code to the vendor's Shift-JIS
// code, or "" with a warning when the vendor table has none.
func shiftJIS(carriers *carrier.Set, name, code, symbolID string, logger *slog.Logger) string {
	catalog, err := carriers.Catalog(name)
	if err != nil {
		// sourcesCarriers holds known names only.
		panic(err)
	}

	vendorSym := catalog.SymbolFromUnicode(code)
	if vendorSym == nil || vendorSym.ShiftJIS == "" {
		logger.Warn("missing Shift-JIS code",
			"symbol", symbolID, "carrier", name, "code", code)
		return ""
	}

	return vendorSym.ShiftJIS
}
