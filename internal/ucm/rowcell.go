package ucm

import "fmt"

// RowCell is a JIS X 0208-style row-cell (ku-ten) code. ARIB broadcast
// symbols are published as 4-decimal-digit row-cell codes.
type RowCell struct {
	Row  int
	Cell int
}

// FromShiftJIS converts a double-byte Shift-JIS code to its row-cell form.
func FromShiftJIS(s1, s2 byte) (RowCell, error) {
	if !(s1 >= 0x81 && s1 <= 0x9F || s1 >= 0xE0 && s1 <= 0xFC) {
		return RowCell{}, fmt.Errorf("invalid Shift-JIS lead byte 0x%02X", s1)
	}
	if s2 < 0x40 || s2 > 0xFC || s2 == 0x7F {
		return RowCell{}, fmt.Errorf("invalid Shift-JIS trail byte 0x%02X", s2)
	}

	lead := int(s1)
	if s1 <= 0x9F {
		lead -= 0x70
	} else {
		lead -= 0xB0
	}

	var j1, j2 int
	if s2 >= 0x9F {
		j1 = 2 * lead
		j2 = int(s2) - 0x7E
	} else {
		j1 = 2*lead - 1
		j2 = int(s2) - 0x1F
		if s2 >= 0x80 {
			j2--
		}
	}

	return RowCell{Row: j1 - 0x20, Cell: j2 - 0x20}, nil
}

// String renders the 4-decimal-digit row-cell form, e.g. "9055".
func (rc RowCell) String() string {
	return fmt.Sprintf("%02d%02d", rc.Row, rc.Cell)
}
