package carrier

import (
	"errors"
	"fmt"

	"golang.org/x/text/runes"
	"golang.org/x/text/width"
)

// Names lists the recognized carrier names, in chart column order.
var Names = []string{"docomo", "kddi", "softbank", "google"}

// ErrUnknownCarrier reports a query for a carrier name outside the fixed
// set of four. It is a caller error, not missing data.
var ErrUnknownCarrier = errors.New("unknown carrier")

// Symbol is one entry of a vendor's emoji table.
type Symbol struct {
	// Uni is the vendor's Unicode PUA code point, uppercase hex.
	Uni string

	// Number is the vendor's catalog number, 0 if none.
	// DoCoMo numbers >= 300 denote "Expansion Pictograms" (number - 300).
	Number int

	// OldNumber and NewNumber are the pre-/post-June-2008 SoftBank
	// numbering variants, 0 if none.
	OldNumber int
	NewNumber int

	// ShiftJIS and JIS are the vendor's legacy double-byte codes,
	// uppercase hex, empty if the vendor publishes none.
	ShiftJIS string
	JIS      string

	// NameEn and NameJa are the vendor's symbol names.
	NameEn string
	NameJa string

	catalog *Catalog
}

// ImageHTML returns an <img> fragment pointing at the vendor's hosted
// image for this symbol, or an empty string if the vendor hosts none.
func (s *Symbol) ImageHTML() string {
	if s.catalog == nil || s.catalog.imageURL == nil {
		return ""
	}
	url := s.catalog.imageURL(s)
	if url == "" {
		return ""
	}
	return fmt.Sprintf("<img src=%s>", url)
}

// Catalog is one vendor's symbol table, indexed by Unicode PUA code.
type Catalog struct {
	name     string
	byUni    map[string]*Symbol
	imageURL func(*Symbol) string
}

// NewCatalog builds a catalog from already-parsed symbols. imageURL may be
// nil for a vendor without hosted images.
func NewCatalog(name string, symbols []*Symbol, imageURL func(*Symbol) string) *Catalog {
	c := &Catalog{
		name:     name,
		byUni:    make(map[string]*Symbol, len(symbols)),
		imageURL: imageURL,
	}
	for _, s := range symbols {
		s.catalog = c
		c.byUni[s.Uni] = s
	}

	return c
}

// Name returns the carrier name this catalog belongs to.
func (c *Catalog) Name() string { return c.name }

// SymbolFromUnicode returns the vendor symbol for the given Unicode PUA
// code point, or nil if the vendor's set has no such code.
func (c *Catalog) SymbolFromUnicode(uni string) *Symbol {
	return c.byUni[uni]
}

// Len returns the number of symbols in the catalog.
func (c *Catalog) Len() int { return len(c.byUni) }

// Set groups the four carrier catalogs under the fixed carrier names.
type Set struct {
	catalogs map[string]*Catalog
}

// NewSet builds a Set from the four catalogs, in the fixed name order.
func NewSet(docomo, kddi, softbank, google *Catalog) *Set {
	return &Set{catalogs: map[string]*Catalog{
		"docomo":   docomo,
		"kddi":     kddi,
		"softbank": softbank,
		"google":   google,
	}}
}

// Catalog returns the catalog for the given carrier name.
// A name outside the fixed set fails with ErrUnknownCarrier.
func (s *Set) Catalog(name string) (*Catalog, error) {
	c, ok := s.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCarrier, name)
	}

	return c, nil
}

// Known reports whether name is one of the four fixed carrier names.
func (s *Set) Known(name string) bool {
	_, ok := s.catalogs[name]
	return ok
}

// Vendor tables wrap name glosses in fullwidth parentheses; fold just
// those to their narrow forms so the names line up with the ASCII text
// around them in generated charts. Other fullwidth runes (katakana in
// particular) must stay untouched.
var foldParens = runes.If(runes.Predicate(isFullwidthParen), width.Narrow, nil)

func isFullwidthParen(r rune) bool {
	return r == '（' || r == '）'
}
