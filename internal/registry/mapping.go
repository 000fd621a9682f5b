package registry

import (
	"fmt"
	"strings"

	"emoji4unicode/internal/carrier"
)

//go:generate go tool stringer -type=MappingKind -output=mappingkind_string.go

// MappingKind classifies a symbol's relationship to one carrier's
// character set.
type MappingKind int

const (
	// NoMapping means the carrier has nothing comparable.
	NoMapping MappingKind = iota
	// RoundTrip is a two-way equivalence with a carrier symbol.
	RoundTrip
	// Fallback is a one-way, best-effort association; converting back
	// would not restore the original symbol.
	Fallback
)

// Mapping is a resolved (kind, code) pair for one symbol and one carrier.
// Code is the vendor-native code, possibly a '+'-joined sequence, with the
// fallback marker already stripped; it is "" for NoMapping.
type Mapping struct {
	Kind MappingKind
	Code string
}

// CarrierUnicode returns the raw carrier code annotation for the given
// carrier name: the vendor's Unicode PUA code, possibly '>'-prefixed for
// a one-way fallback, or "" if there is none.
// A name outside the fixed carrier set fails with ErrUnknownCarrier.
func (s *Symbol) CarrierUnicode(name string) (string, error) {
	if !s.reg.env.Carriers.Known(name) {
		return "", fmt.Errorf("symbol %q: %w %q", s.ID, ErrUnknownCarrier, name)
	}

	return s.carrierCodes[name], nil
}

// CarrierMapping resolves the symbol's relationship to the named carrier.
func (s *Symbol) CarrierMapping(name string) (Mapping, error) {
	raw, err := s.CarrierUnicode(name)
	if err != nil {
		return Mapping{}, err
	}

	switch {
	case raw == "":
		return Mapping{Kind: NoMapping}, nil
	case strings.HasPrefix(raw, ">"):
		return Mapping{Kind: Fallback, Code: raw[1:]}, nil
	default:
		return Mapping{Kind: RoundTrip, Code: raw}, nil
	}
}

// ImageHTML returns the HTML fragment for the symbol's representative
// image, or "" if the symbol designates none.
//
// The symbol's img_from attribute names the carrier whose glyph should
// represent it. A fallback mapping to that carrier cannot supply a
// faithful image; it is reported as a warning and yields no image rather
// than aborting.
func (s *Symbol) ImageHTML() string {
	if s.imgFrom == "" {
		return ""
	}

	m, err := s.CarrierMapping(s.imgFrom)
	if err != nil {
		// img_from was validated at build time.
		panic(err)
	}

	switch m.Kind {
	case NoMapping:
		s.reg.env.Logger.Warn("img_from carrier has no mapping",
			"symbol", s.ID, "carrier", s.imgFrom)
		return ""
	case Fallback:
		s.reg.env.Logger.Warn("img_from does not have a roundtrip with that carrier",
			"symbol", s.ID, "carrier", s.imgFrom, "mapping", ">"+m.Code)
		return ""
	}

	cat, err := s.reg.env.Carriers.Catalog(s.imgFrom)
	if err != nil {
		panic(err)
	}

	vendorSym := cat.SymbolFromUnicode(m.Code)
	if vendorSym == nil {
		s.reg.env.Logger.Warn("img_from code missing from carrier catalog",
			"symbol", s.ID, "carrier", s.imgFrom, "code", m.Code)
		return ""
	}

	return s.reg.CarrierImageHTML(s.imgFrom, vendorSym)
}

// CarrierImageHTML returns the image HTML for a vendor symbol, applying
// the cross-vendor redirect: KDDI images whose symbol has an equivalent
// Google code are hosted through Google's web mail image service instead,
// because the KDDI-side hosting lives on unstable third-party URLs.
func (r *Registry) CarrierImageHTML(name string, vendorSym *carrier.Symbol) string {
	if name == "kddi" {
		if googleUni, ok := r.kddiToGoogle[vendorSym.Uni]; ok {
			return fmt.Sprintf("<img src=http://mail.google.com/mail/e/ezweb_ne_jp/%s>",
				googleUni[len(googleUni)-3:])
		}
	}

	return vendorSym.ImageHTML()
}
