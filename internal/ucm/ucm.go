// Package ucm reads the subset of the ICU .ucm mapping table format needed
// for the broadcast (ARIB) symbol table: CHARMAP entries mapping Unicode
// code points to double-byte Shift-JIS sequences.
package ucm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Table maps Unicode code points (or '+'-joined sequences) in uppercase
// hex to the legacy double-byte code.
type Table struct {
	fromUnicode map[string][]byte
}

// LoadFile loads a .ucm file from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ucm file: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("ucm file %s: %w", path, err)
	}

	return t, nil
}

// Parse reads the CHARMAP section of a .ucm stream. Mapping lines look
// like
//
//	<U26EA>  \xF9\x5F |0
//
// with one or more <Uxxxx> escapes, two-byte \x escapes and a precision
// flag. Precision |3 entries are one-way toward Unicode and are not
// mappings from Unicode, so they are skipped. Everything outside
// CHARMAP..END CHARMAP is header material and ignored.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{fromUnicode: make(map[string][]byte)}

	inCharmap := false
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "CHARMAP":
			inCharmap = true
			continue
		case line == "END CHARMAP":
			inCharmap = false
			continue
		case !inCharmap || line == "" || strings.HasPrefix(line, "#"):
			continue
		}

		uni, bytes, precision, err := parseMapping(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if precision == 3 {
			continue // to-Unicode fallback only
		}
		t.fromUnicode[uni] = bytes
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ucm data: %w", err)
	}

	return t, nil
}

// FromUnicode returns the legacy byte sequence for a Unicode code point or
// '+'-joined sequence, or nil if unmapped.
func (t *Table) FromUnicode(uni string) []byte {
	return t.fromUnicode[uni]
}

// RowCell returns the row-cell form of the legacy code for uni.
// ok is false if uni is unmapped or the stored bytes are not a double-byte
// Shift-JIS code.
func (t *Table) RowCell(uni string) (RowCell, bool) {
	b := t.fromUnicode[uni]
	if len(b) != 2 {
		return RowCell{}, false
	}

	rc, err := FromShiftJIS(b[0], b[1])
	if err != nil {
		return RowCell{}, false
	}

	return rc, true
}

// Len returns the number of from-Unicode mappings.
func (t *Table) Len() int { return len(t.fromUnicode) }

func parseMapping(line string) (uni string, bytes []byte, precision int, err error) {
	// Strip a trailing comment first.
	if i := strings.Index(line, "#"); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	rest := line
	var points []string
	for strings.HasPrefix(rest, "<U") {
		end := strings.Index(rest, ">")
		if end < 0 {
			return "", nil, 0, fmt.Errorf("unterminated code point in %q", line)
		}
		hex := rest[2:end]
		if _, perr := strconv.ParseUint(hex, 16, 32); perr != nil {
			return "", nil, 0, fmt.Errorf("bad code point %q", hex)
		}
		points = append(points, strings.ToUpper(hex))
		rest = strings.TrimSpace(rest[end+1:])
	}
	if len(points) == 0 {
		return "", nil, 0, fmt.Errorf("no code point in %q", line)
	}

	for strings.HasPrefix(rest, `\x`) {
		if len(rest) < 4 {
			return "", nil, 0, fmt.Errorf("truncated byte escape in %q", line)
		}
		b, perr := strconv.ParseUint(rest[2:4], 16, 8)
		if perr != nil {
			return "", nil, 0, fmt.Errorf("bad byte escape in %q", line)
		}
		bytes = append(bytes, byte(b))
		rest = strings.TrimSpace(rest[4:])
	}
	if len(bytes) == 0 {
		return "", nil, 0, fmt.Errorf("no bytes in %q", line)
	}

	if !strings.HasPrefix(rest, "|") {
		return "", nil, 0, fmt.Errorf("missing precision flag in %q", line)
	}
	precision, err = strconv.Atoi(rest[1:])
	if err != nil {
		return "", nil, 0, fmt.Errorf("bad precision flag in %q", line)
	}

	return strings.Join(points, "+"), bytes, precision, nil
}
