package main

import (
	"errors"
	"io/fs"
	"log/slog"

	"emoji4unicode/internal/age"
	"emoji4unicode/internal/carrier"
	"emoji4unicode/internal/config"
	"emoji4unicode/internal/registry"
	"emoji4unicode/internal/ucm"
)

// runEnv bundles everything a generation run needs.
type runEnv struct {
	cfg      *config.Config
	reg      *registry.Registry
	carriers *carrier.Set
	ages     *age.Table
}

// loadEnv loads the carrier tables, the optional side tables and the
// registry document per the effective configuration. The ARIB and age
// tables are optional inputs; a missing file degrades the chart rather
// than failing the run.
func loadEnv(flags *rootFlags) (*runEnv, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	carriers, err := carrier.LoadSet(cfg.CarrierDir)
	if err != nil {
		return nil, err
	}

	arib, err := ucm.LoadFile(cfg.ARIBFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		slog.Warn("ARIB table not found, symbols will report no ARIB codes",
			"path", cfg.ARIBFile)
	}

	ages, err := age.LoadFile(cfg.AgeFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		slog.Warn("age table not found, encoding status will be unversioned",
			"path", cfg.AgeFile)
	}

	reg, err := registry.Load(cfg.Document, registry.Env{
		Carriers: carriers,
		ARIB:     arib,
		Logger:   slog.Default(),
	})
	if err != nil {
		return nil, err
	}

	return &runEnv{cfg: cfg, reg: reg, carriers: carriers, ages: ages}, nil
}
