package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes one generated artifact into the output directory.
// It creates the directory if it doesn't exist.
func WriteFile(outputDir, name string, content []byte) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	err = os.WriteFile(filepath.Join(outputDir, name), content, filePerm)
	if err != nil {
		return fmt.Errorf("writing file %s: %w", name, err)
	}

	return nil
}
