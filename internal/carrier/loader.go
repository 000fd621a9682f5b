package carrier

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Encoding selects the character encoding of a carrier table file.
type Encoding int

const (
	// UTF8 tables are read as-is.
	UTF8 Encoding = iota
	// ShiftJIS tables are decoded while reading. The KDDI table ships in
	// Shift-JIS.
	ShiftJIS
)

// LoadFile loads one carrier table from path.
func LoadFile(path, name string, enc Encoding, imageURL func(*Symbol) string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open carrier table: %w", err)
	}
	defer f.Close()

	c, err := Parse(f, name, enc, imageURL)
	if err != nil {
		return nil, fmt.Errorf("carrier table %s: %w", path, err)
	}

	return c, nil
}

// Parse reads one carrier table.
//
// The table is a semicolon-delimited file with one symbol per line:
//
//	uni;number;old_number;new_number;shift_jis;jis;name_en;name_ja
//
// Empty lines and lines starting with '#' are skipped. Number fields may
// be empty. Hex fields are normalized to uppercase.
func Parse(r io.Reader, name string, enc Encoding, imageURL func(*Symbol) string) (*Catalog, error) {
	if enc == ShiftJIS {
		r = transform.NewReader(r, japanese.ShiftJIS.NewDecoder())
	}

	var symbols []*Symbol

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sym, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		symbols = append(symbols, sym)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read carrier table: %w", err)
	}

	return NewCatalog(name, symbols, imageURL), nil
}

func parseLine(line string) (*Symbol, error) {
	fields := strings.Split(line, ";")
	if len(fields) != 8 {
		return nil, fmt.Errorf("expected 8 fields, got %d", len(fields))
	}

	uni := strings.ToUpper(strings.TrimSpace(fields[0]))
	if uni == "" {
		return nil, fmt.Errorf("empty uni field")
	}

	number, err := parseNumber(fields[1])
	if err != nil {
		return nil, fmt.Errorf("number: %w", err)
	}

	oldNumber, err := parseNumber(fields[2])
	if err != nil {
		return nil, fmt.Errorf("old number: %w", err)
	}

	newNumber, err := parseNumber(fields[3])
	if err != nil {
		return nil, fmt.Errorf("new number: %w", err)
	}

	return &Symbol{
		Uni:       uni,
		Number:    number,
		OldNumber: oldNumber,
		NewNumber: newNumber,
		ShiftJIS:  strings.ToUpper(strings.TrimSpace(fields[4])),
		JIS:       strings.ToUpper(strings.TrimSpace(fields[5])),
		NameEn:    strings.TrimSpace(fields[6]),
		NameJa:    foldParens.String(strings.TrimSpace(fields[7])),
	}, nil
}

func parseNumber(field string) (int, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, nil
	}

	return strconv.Atoi(field)
}

// Table file names under the data directory.
const (
	docomoFile   = "docomo.txt"
	kddiFile     = "kddi.txt"
	softbankFile = "softbank.txt"
	googleFile   = "google.txt"
)

// LoadSet loads the four carrier tables from dir using the conventional
// file names and per-carrier image hosting schemes.
func LoadSet(dir string) (*Set, error) {
	docomo, err := LoadFile(filepath.Join(dir, docomoFile), "docomo", UTF8, docomoImageURL)
	if err != nil {
		return nil, err
	}

	kddi, err := LoadFile(filepath.Join(dir, kddiFile), "kddi", ShiftJIS, kddiImageURL)
	if err != nil {
		return nil, err
	}

	softbank, err := LoadFile(filepath.Join(dir, softbankFile), "softbank", UTF8, softbankImageURL)
	if err != nil {
		return nil, err
	}

	google, err := LoadFile(filepath.Join(dir, googleFile), "google", UTF8, GoogleImageURL)
	if err != nil {
		return nil, err
	}

	return NewSet(docomo, kddi, softbank, google), nil
}

// Per-carrier image hosting. All of these are third-party sites that may
// move or vanish, except Google's web mail hosting, which is why the
// registry prefers a Google-side redirect where one exists.

func docomoImageURL(s *Symbol) string {
	if s.Number == 0 {
		return ""
	}
	n := s.Number
	if n >= 300 {
		// Expansion Pictograms are hosted under their own numbering.
		return fmt.Sprintf("http://www.nttdocomo.co.jp/service/imode/make/content/pictograph/extention/images/%d.gif", n-300)
	}
	return fmt.Sprintf("http://www.nttdocomo.co.jp/service/imode/make/content/pictograph/basic/images/%d.gif", n)
}

func kddiImageURL(s *Symbol) string {
	if s.Number == 0 {
		return ""
	}
	return fmt.Sprintf("http://www.openspc2.org/reibun/ezweb/emoji/%d.gif", s.Number)
}

func softbankImageURL(s *Symbol) string {
	if s.NewNumber == 0 {
		return ""
	}
	return fmt.Sprintf("http://creation.mb.softbank.jp/web/img/emoji/%d.gif", s.NewNumber)
}

// GoogleImageURL keys Google's web mail hosting by the last three hex
// digits of the PUA code. Exported because the registry reuses the same
// scheme when redirecting KDDI images through Google hosting.
func GoogleImageURL(s *Symbol) string {
	return "http://mail.google.com/mail/e/" + lastThree(s.Uni)
}

func lastThree(uni string) string {
	if len(uni) <= 3 {
		return uni
	}
	return uni[len(uni)-3:]
}
