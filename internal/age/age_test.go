package age

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# DerivedAge excerpt
0020..007E    ; 1.1 #   [95] SPACE..TILDE
2600..2613    ; 1.1 #   [20] BLACK SUN WITH RAYS..SALTIRE
26BD..26BE    ; 5.2 #    [2] SOCCER BALL..BASEBALL
20E3          ; 3.0 #        COMBINING ENCLOSING KEYCAP
1F300..1F320  ; 6.0 #   [33] CYCLONE..SHOOTING STAR
1F900..1F90B  ; 10.0 #  [12] CIRCLED CROSS FORMEE..DOWNWARD FACING NOTCHED HOOK
`

func TestParseAndLookup(t *testing.T) {
	table, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	tests := []struct {
		uni  string
		want string
		ok   bool
	}{
		{"2600", "1.1", true},
		{"2613", "1.1", true},
		{"26BD", "5.2", true},
		{"1F300", "6.0", true},
		{"1F320", "6.0", true},
		{"1F321", "", false}, // past the range end
		{"E63E", "", false},  // PUA, unlisted
	}

	for _, tt := range tests {
		v, ok := table.Age(tt.uni)
		assert.Equal(t, tt.ok, ok, tt.uni)
		if tt.ok {
			assert.Equal(t, tt.want, v.String(), tt.uni)
		}
	}
}

func TestAge_Sequence(t *testing.T) {
	table, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	// A sequence is only as old as its newest part.
	v, ok := table.Age("0039+20E3")
	require.True(t, ok)
	assert.Equal(t, "3.0", v.String())

	// A sequence with any unlisted part is unlisted.
	_, ok = table.Age("0039+E63E")
	assert.False(t, ok)
}

func TestVersion_CompareNumerically(t *testing.T) {
	v10, err := ParseVersion("10.0")
	require.NoError(t, err)
	v6, err := ParseVersion("6.0")
	require.NoError(t, err)

	// "10.0" < "6.0" as strings; the numeric compare must disagree.
	assert.Equal(t, 1, v10.Compare(v6))
	assert.Equal(t, -1, v6.Compare(v10))
	assert.Equal(t, 0, v6.Compare(Version{Major: 6, Minor: 0}))
}

func TestParse_Malformed(t *testing.T) {
	bad := []string{
		"0020..007E\n",
		"XYZ ; 1.1\n",
		"0020..000F ; 1.1\n",
		"0020 ; one.one\n",
	}

	for _, src := range bad {
		_, err := Parse(strings.NewReader(src))
		assert.Error(t, err, src)
	}
}
