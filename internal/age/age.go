// Package age answers "which Unicode version first encoded this code
// point", backed by a DerivedAge-style data file.
package age

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Version is a Unicode version number. Versions compare numerically by
// major then minor: 10.0 is newer than 6.0 even though it sorts earlier
// as a string.
type Version struct {
	Major int
	Minor int
}

// ParseVersion parses "N.M".
func ParseVersion(s string) (Version, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok {
		return Version{}, fmt.Errorf("bad version %q", s)
	}

	maj, err := strconv.Atoi(major)
	if err != nil {
		return Version{}, fmt.Errorf("bad version %q", s)
	}
	min, err := strconv.Atoi(minor)
	if err != nil {
		return Version{}, fmt.Errorf("bad version %q", s)
	}

	return Version{Major: maj, Minor: min}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0 or +1 comparing v to other numerically.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		if v.Major < other.Major {
			return -1
		}
		return 1
	case v.Minor != other.Minor:
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	default:
		return 0
	}
}

type span struct {
	lo, hi  rune
	version Version
}

// Table maps code points to the Unicode version that introduced them.
type Table struct {
	spans []span // sorted by lo, non-overlapping
}

// LoadFile loads a DerivedAge-style file from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open age table: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("age table %s: %w", path, err)
	}

	return t, nil
}

// Parse reads DerivedAge-style lines:
//
//	0000..001F    ; 1.1 #  [32] <control-0000>..<control-001F>
//	00A0          ; 1.1 #       NO-BREAK SPACE
//
// '#' starts a comment; blank lines are skipped.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s, err := parseSpan(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		t.spans = append(t.spans, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read age table: %w", err)
	}

	sort.Slice(t.spans, func(i, j int) bool { return t.spans[i].lo < t.spans[j].lo })

	return t, nil
}

func parseSpan(line string) (span, error) {
	rangeField, versionField, ok := strings.Cut(line, ";")
	if !ok {
		return span{}, fmt.Errorf("missing ';' in %q", line)
	}

	v, err := ParseVersion(strings.TrimSpace(versionField))
	if err != nil {
		return span{}, err
	}

	rangeField = strings.TrimSpace(rangeField)
	loField, hiField, isRange := strings.Cut(rangeField, "..")

	lo, err := strconv.ParseUint(loField, 16, 32)
	if err != nil {
		return span{}, fmt.Errorf("bad code point %q", loField)
	}
	hi := lo
	if isRange {
		hi, err = strconv.ParseUint(hiField, 16, 32)
		if err != nil {
			return span{}, fmt.Errorf("bad code point %q", hiField)
		}
	}
	if hi < lo {
		return span{}, fmt.Errorf("inverted range %q", rangeField)
	}

	return span{lo: rune(lo), hi: rune(hi), version: v}, nil
}

// AgeOf returns the version of a single code point.
func (t *Table) AgeOf(cp rune) (Version, bool) {
	i := sort.Search(len(t.spans), func(i int) bool { return t.spans[i].hi >= cp })
	if i < len(t.spans) && t.spans[i].lo <= cp && cp <= t.spans[i].hi {
		return t.spans[i].version, true
	}

	return Version{}, false
}

// Age returns the version of a code point or '+'-joined sequence in
// uppercase hex. A sequence is only as old as its newest part, so the
// maximum version is returned; if any part is unlisted the whole
// sequence is considered unlisted.
func (t *Table) Age(uni string) (Version, bool) {
	var max Version
	for _, part := range strings.Split(uni, "+") {
		cp, err := strconv.ParseUint(part, 16, 32)
		if err != nil {
			return Version{}, false
		}

		v, ok := t.AgeOf(rune(cp))
		if !ok {
			return Version{}, false
		}
		if v.Compare(max) > 0 {
			max = v
		}
	}

	return max, true
}
