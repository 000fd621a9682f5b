// Package config loads the YAML run configuration: where the registry
// data lives and where generated artifacts go.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config names the data inputs and the output directory. Every field is
// optional; unset fields resolve against DataDir.
type Config struct {
	// DataDir holds the registry document and its side tables.
	DataDir string `yaml:"data_dir"`

	// Document is the registry XML file.
	Document string `yaml:"document"`

	// CarrierDir holds the per-vendor symbol table files.
	CarrierDir string `yaml:"carrier_dir"`

	// AgeFile is the Unicode version age table.
	AgeFile string `yaml:"age_file"`

	// ARIBFile is the broadcast symbol mapping table.
	ARIBFile string `yaml:"arib_file"`

	// OutputDir receives generated artifacts.
	OutputDir string `yaml:"output_dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// ForDataDir returns a configuration with every input path resolved
// against the given data directory.
func ForDataDir(dir string) *Config {
	c := &Config{DataDir: dir}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Document == "" {
		c.Document = filepath.Join(c.DataDir, "emoji4unicode.xml")
	}
	if c.CarrierDir == "" {
		c.CarrierDir = c.DataDir
	}
	if c.AgeFile == "" {
		c.AgeFile = filepath.Join(c.DataDir, "DerivedAge.txt")
	}
	if c.ARIBFile == "" {
		c.ARIBFile = filepath.Join(c.DataDir, "arib.ucm")
	}
	if c.OutputDir == "" {
		c.OutputDir = "generated"
	}
}
