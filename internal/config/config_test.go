package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, filepath.Join("data", "emoji4unicode.xml"), c.Document)
	assert.Equal(t, "data", c.CarrierDir)
	assert.Equal(t, filepath.Join("data", "DerivedAge.txt"), c.AgeFile)
	assert.Equal(t, filepath.Join("data", "arib.ucm"), c.ARIBFile)
	assert.Equal(t, "generated", c.OutputDir)
}

func TestParse_UnsetFieldsFollowDataDir(t *testing.T) {
	c, err := Parse([]byte("data_dir: /srv/emoji\noutput_dir: /tmp/out\n"))
	require.NoError(t, err)

	assert.Equal(t, "/srv/emoji", c.DataDir)
	assert.Equal(t, filepath.Join("/srv/emoji", "emoji4unicode.xml"), c.Document)
	assert.Equal(t, "/srv/emoji", c.CarrierDir)
	assert.Equal(t, "/tmp/out", c.OutputDir)
}

func TestParse_ExplicitPathsWin(t *testing.T) {
	c, err := Parse([]byte("document: /elsewhere/registry.xml\n"))
	require.NoError(t, err)

	assert.Equal(t, "/elsewhere/registry.xml", c.Document)
	assert.Equal(t, "data", c.DataDir)
}

func TestParse_RejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("data_dir: [unclosed\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emoji4unicode.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: charts\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "charts", c.OutputDir)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
