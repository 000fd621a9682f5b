package registry

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Document is the parsed form of the registry source document. It mirrors
// the XML structure one-to-one; Build turns it into the resolved
// hierarchy.
type Document struct {
	XMLName    xml.Name           `xml:"emoji4unicode"`
	Categories []*CategoryElement `xml:"category"`
}

// CategoryElement is a raw <category> node.
type CategoryElement struct {
	Name          string                `xml:"name,attr"`
	InProposal    string                `xml:"in_proposal,attr"`
	Subcategories []*SubcategoryElement `xml:"subcategory"`
}

// SubcategoryElement is a raw <subcategory> node.
type SubcategoryElement struct {
	Name       string           `xml:"name,attr"`
	InProposal string           `xml:"in_proposal,attr"`
	Symbols    []*SymbolElement `xml:"e"`
}

// SymbolElement is a raw <e> symbol node. The unicode attribute carries
// the standardization annotation the allocator resolves; the four
// carrier attributes carry the raw mapping grammar (">" fallback prefix,
// "+"-joined sequences).
type SymbolElement struct {
	ID           string `xml:"id,attr"`
	Name         string `xml:"name,attr"`
	OldName      string `xml:"oldname,attr"`
	Unicode      string `xml:"unicode,attr"`
	InProposal   string `xml:"in_proposal,attr"`
	Docomo       string `xml:"docomo,attr"`
	KDDI         string `xml:"kddi,attr"`
	Softbank     string `xml:"softbank,attr"`
	Google       string `xml:"google,attr"`
	ImgFrom      string `xml:"img_from,attr"`
	TextFallback string `xml:"text_fallback,attr"`
	TextRepr     string `xml:"text_repr,attr"`
	GlyphRefID   string `xml:"glyphRefID,attr"`
	Prop         string `xml:"prop,attr"`

	Annotations []string `xml:"ann"`
	Descs       []string `xml:"desc"`
	Designs     []string `xml:"design"`
}

func (e *SymbolElement) carrierAttr(name string) string {
	switch name {
	case "docomo":
		return e.Docomo
	case "kddi":
		return e.KDDI
	case "softbank":
		return e.Softbank
	case "google":
		return e.Google
	}

	return ""
}

// Parse reads the registry source document.
func Parse(r io.Reader) (*Document, error) {
	var doc Document

	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse registry document: %w", err)
	}

	return &doc, nil
}

// ParseFile reads the registry source document from path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry document: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("registry document %s: %w", path, err)
	}

	return doc, nil
}
