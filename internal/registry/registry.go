package registry

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"emoji4unicode/internal/carrier"
	"emoji4unicode/internal/ucm"
)

var (
	// ErrMalformedDocument reports a structural violation in the source
	// document: an unrecognized in_proposal literal, a missing id, a
	// duplicated single-valued child, or a code annotation outside the
	// grammar.
	ErrMalformedDocument = errors.New("malformed registry document")

	// ErrUnknownCarrier wraps carrier.ErrUnknownCarrier for queries made
	// through the registry.
	ErrUnknownCarrier = carrier.ErrUnknownCarrier
)

// Env carries the loaded collaborator tables a registry build needs.
type Env struct {
	// Carriers is the set of four vendor catalogs.
	Carriers *carrier.Set

	// ARIB is the broadcast symbol mapping table. Optional; without it
	// symbols simply report no ARIB code.
	ARIB *ucm.Table

	// Logger receives non-fatal diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Category is a named grouping of subcategories.
type Category struct {
	Name       string
	InProposal bool

	subcategories []*Subcategory
}

// Subcategories returns the subcategories in document order.
func (c *Category) Subcategories() []*Subcategory { return c.subcategories }

// Subcategory is a named grouping of symbols inside one category.
type Subcategory struct {
	Name       string
	InProposal bool

	// Category is the owning category, back-reference only.
	Category *Category

	symbols []*Symbol
}

// Symbols returns the symbols in document order.
func (s *Subcategory) Symbols() []*Symbol { return s.symbols }

// Symbol is one proposal symbol with its resolved attributes.
type Symbol struct {
	// ID is the proposal-scoped symbol id, unique across the registry.
	ID string

	// Subcategory is the owning subcategory, back-reference only.
	Subcategory *Subcategory

	// InProposal is the resolved proposal-membership flag.
	InProposal bool

	name         string
	oldName      string
	rawUnicode   string
	proposedUni  string
	carrierCodes map[string]string
	imgFrom      string
	textFallback string
	textRepr     string
	prop         string
	glyphRefID   int
	annotations  []string
	description  string
	design       string

	reg *Registry
}

// Registry is the loaded, read-only symbol hierarchy plus the
// cross-vendor state resolved at build time.
type Registry struct {
	env        Env
	categories []*Category
	byID       map[string]*Symbol

	// kddiToGoogle redirects KDDI image hosting through Google's for
	// symbols where both carriers have round-trip mappings. Captured
	// once during Build.
	kddiToGoogle map[string]string
}

// Load parses the document at path and builds the registry.
func Load(path string, env Env) (*Registry, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	return Build(doc, env)
}

// Build constructs the resolved hierarchy from a parsed document.
//
// in_proposal resolution runs strictly top-down: a node's effective value
// is its own "yes"/"no" if present, else the parent's already-resolved
// value, with a process-wide default of true. Proposed code points are
// allocated in the same single pass, in document order, so rebuilding
// from the same document always reproduces them.
func Build(doc *Document, env Env) (*Registry, error) {
	if env.Carriers == nil {
		return nil, errors.New("carrier catalogs are required")
	}
	if env.Logger == nil {
		env.Logger = slog.Default()
	}

	r := &Registry{
		env:          env,
		byID:         make(map[string]*Symbol),
		kddiToGoogle: make(map[string]string),
	}
	alloc := newAllocator()

	for _, ce := range doc.Categories {
		cat, err := r.buildCategory(ce, alloc)
		if err != nil {
			return nil, err
		}
		r.categories = append(r.categories, cat)
	}

	return r, nil
}

func (r *Registry) buildCategory(ce *CategoryElement, alloc *allocator) (*Category, error) {
	inProposal, err := resolveInProposal(ce.InProposal, true)
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", ce.Name, err)
	}

	cat := &Category{Name: ce.Name, InProposal: inProposal}
	for _, se := range ce.Subcategories {
		sub, err := r.buildSubcategory(cat, se, alloc)
		if err != nil {
			return nil, err
		}
		cat.subcategories = append(cat.subcategories, sub)
	}

	return cat, nil
}

func (r *Registry) buildSubcategory(cat *Category, se *SubcategoryElement, alloc *allocator) (*Subcategory, error) {
	inProposal, err := resolveInProposal(se.InProposal, cat.InProposal)
	if err != nil {
		return nil, fmt.Errorf("subcategory %q: %w", se.Name, err)
	}

	sub := &Subcategory{Name: se.Name, Category: cat, InProposal: inProposal}
	for _, ee := range se.Symbols {
		sym, err := r.buildSymbol(sub, ee, alloc)
		if err != nil {
			return nil, err
		}
		sub.symbols = append(sub.symbols, sym)
	}

	return sub, nil
}

func (r *Registry) buildSymbol(sub *Subcategory, ee *SymbolElement, alloc *allocator) (*Symbol, error) {
	if ee.ID == "" {
		return nil, fmt.Errorf("%w: symbol without id in subcategory %q", ErrMalformedDocument, sub.Name)
	}
	if _, dup := r.byID[ee.ID]; dup {
		return nil, fmt.Errorf("%w: duplicate symbol id %q", ErrMalformedDocument, ee.ID)
	}

	inProposal, err := resolveInProposal(ee.InProposal, sub.InProposal)
	if err != nil {
		return nil, fmt.Errorf("symbol %q: %w", ee.ID, err)
	}

	if !unicodeAnnotationRe.MatchString(ee.Unicode) {
		return nil, fmt.Errorf("%w: symbol %q: bad unicode annotation %q", ErrMalformedDocument, ee.ID, ee.Unicode)
	}
	if len(ee.Descs) > 1 {
		return nil, fmt.Errorf("%w: symbol %q: more than one <desc>", ErrMalformedDocument, ee.ID)
	}
	if len(ee.Designs) > 1 {
		return nil, fmt.Errorf("%w: symbol %q: more than one <design>", ErrMalformedDocument, ee.ID)
	}

	glyphRefID := 0
	if ee.GlyphRefID != "" {
		glyphRefID, err = strconv.Atoi(ee.GlyphRefID)
		if err != nil {
			return nil, fmt.Errorf("%w: symbol %q: bad glyphRefID %q", ErrMalformedDocument, ee.ID, ee.GlyphRefID)
		}
	}

	sym := &Symbol{
		ID:           ee.ID,
		Subcategory:  sub,
		InProposal:   inProposal,
		name:         ee.Name,
		oldName:      ee.OldName,
		rawUnicode:   ee.Unicode,
		carrierCodes: make(map[string]string, len(carrier.Names)),
		imgFrom:      ee.ImgFrom,
		textFallback: ee.TextFallback,
		textRepr:     ee.TextRepr,
		prop:         ee.Prop,
		glyphRefID:   glyphRefID,
		annotations:  trimAll(ee.Annotations),
		reg:          r,
	}
	if len(ee.Descs) == 1 {
		sym.description = reduceWhitespace(ee.Descs[0])
	}
	if len(ee.Designs) == 1 {
		sym.design = reduceWhitespace(ee.Designs[0])
	}

	for _, name := range carrier.Names {
		code := ee.carrierAttr(name)
		if code == "" {
			continue
		}
		if !carrierCodeRe.MatchString(code) {
			return nil, fmt.Errorf("%w: symbol %q: bad %s code %q", ErrMalformedDocument, ee.ID, name, code)
		}
		sym.carrierCodes[name] = code
	}

	if sym.imgFrom != "" && !r.env.Carriers.Known(sym.imgFrom) {
		return nil, fmt.Errorf("symbol %q: img_from: %w %q", sym.ID, ErrUnknownCarrier, sym.imgFrom)
	}

	if sym.InProposal {
		alloc.allocate(sym)
	}

	// Capture the KDDI-to-Google image redirect while the document order
	// is still in hand. Only true round-trips on both sides qualify.
	kddiUni := sym.carrierCodes["kddi"]
	if kddiUni != "" && !strings.HasPrefix(kddiUni, ">") {
		googleUni := sym.carrierCodes["google"]
		if googleUni != "" && !strings.HasPrefix(googleUni, ">") {
			r.kddiToGoogle[kddiUni] = googleUni
		}
	}

	r.byID[sym.ID] = sym

	return sym, nil
}

// Annotation and mapping grammar. Code points are 4..6 uppercase hex
// digits, sequences join them with '+'. The unicode annotation adds the
// bare continuation marker "+", the pin prefix "+", and the upcoming
// prefix "*".
var (
	unicodeAnnotationRe = regexp.MustCompile(`^(\+|[+*]?[0-9A-F]{4,6}(\+[0-9A-F]{4,6})*)?$`)
	carrierCodeRe       = regexp.MustCompile(`^>?[0-9A-F]{4,6}(\+[0-9A-F]{4,6})*$`)
)

func resolveInProposal(attr string, parent bool) (bool, error) {
	switch attr {
	case "":
		return parent, nil
	case "yes":
		return true, nil
	case "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: attribute value in_proposal=%q not recognized", ErrMalformedDocument, attr)
	}
}

func trimAll(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.TrimSpace(l))
	}

	return out
}

// reduceWhitespace makes whitespace horizontal and minimal.
func reduceWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Categories returns the categories in document order.
func (r *Registry) Categories() []*Category { return r.categories }

// SymbolByID returns the symbol with the given id, or nil.
func (r *Registry) SymbolByID(id string) *Symbol { return r.byID[id] }

// Len returns the number of symbols in the registry.
func (r *Registry) Len() int { return len(r.byID) }

// Symbols iterates all symbols in document order. The sequence is
// restartable; ranging over it twice yields the same order.
func (r *Registry) Symbols() iter.Seq[*Symbol] {
	return func(yield func(*Symbol) bool) {
		for _, cat := range r.categories {
			for _, sub := range cat.subcategories {
				for _, sym := range sub.symbols {
					if !yield(sym) {
						return
					}
				}
			}
		}
	}
}

// Name returns the proposed character name.
func (s *Symbol) Name() string { return s.name }

// OldName returns the name proposed in a previous document revision, if
// any.
func (s *Symbol) OldName() string { return s.oldName }

// Unicode returns the standardized code point or '+'-joined sequence the
// symbol is unified with, with any upcoming marker stripped, or "" if the
// symbol is not unified with an existing character.
func (s *Symbol) Unicode() string {
	uni := s.rawUnicode
	if strings.HasPrefix(uni, "+") {
		return ""
	}

	return strings.TrimPrefix(uni, "*")
}

// IsUpcoming reports whether the unified code point is provisional,
// pending a not-yet-final Unicode version.
func (s *Symbol) IsUpcoming() bool {
	return strings.HasPrefix(s.rawUnicode, "*")
}

// ProposedUnicode returns the proposed code point or sequence allocated
// to this symbol, or "" if it has none (unified, or not in the proposal).
func (s *Symbol) ProposedUnicode() string { return s.proposedUni }

// FontCodePoint returns the private-use code point the proposal font maps
// this symbol's glyph to, as a hex-digit string.
func (s *Symbol) FontCodePoint() string { return "E" + s.ID }

// TextFallback returns the plain-text fallback, or "".
func (s *Symbol) TextFallback() string { return s.textFallback }

// TextRepr returns the text representation, or "".
func (s *Symbol) TextRepr() string { return s.textRepr }

// Annotations returns the annotation lines, possibly empty.
func (s *Symbol) Annotations() []string { return s.annotations }

// Description returns the free-form description, or "".
func (s *Symbol) Description() string { return s.description }

// Design returns the font design instructions, or "".
func (s *Symbol) Design() string { return s.design }

// GlyphRefID returns the font glyph reference id, or 0.
func (s *Symbol) GlyphRefID() int { return s.glyphRefID }

// ProposedProperties returns the proposed character properties string,
// or "".
func (s *Symbol) ProposedProperties() string { return s.prop }

// ImageFromID returns the carrier name whose image represents this
// symbol, or "".
func (s *Symbol) ImageFromID() string { return s.imgFrom }

// ARIB returns the 4-decimal-digit row-cell code of the corresponding
// broadcast symbol, or "" if there is none.
func (s *Symbol) ARIB() string {
	uni := s.Unicode()
	if uni == "" || s.reg.env.ARIB == nil {
		return ""
	}

	rc, ok := s.reg.env.ARIB.RowCell(uni)
	if !ok {
		return ""
	}

	return rc.String()
}
