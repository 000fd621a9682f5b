package main

import (
	"bytes"
	"io"
	"time"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"emoji4unicode/internal/gen"
)

type chartFlags struct {
	out        io.Writer
	outputPath string

	onlyInProposal    bool
	noUnified         bool
	noTempNotes       bool
	noFallbacks       bool
	noCodes           bool
	noSymbolNumbers   bool
	showFontChars     bool
	showOnlyFontChars bool
	showRealChars     bool
	byCodePoint       bool
	design            bool
}

func newCmdChart(out io.Writer, root *rootFlags) *cobra.Command {
	flags := &chartFlags{out: out}

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the background HTML chart",
		Long: dedent.Dedent(`
			Render the full background chart as one self-contained HTML page:
			one row per symbol with its representative glyph, proposed or
			standardized code point, name and annotations, and the mapping
			details for each carrier.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(root, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "",
		"write the chart to this file instead of stdout")
	addChartOptionFlags(cmd.Flags(), flags)

	return cmd
}

func addChartOptionFlags(fs *pflag.FlagSet, flags *chartFlags) {
	fs.BoolVar(&flags.onlyInProposal, "only-in-proposal", false,
		"drop symbols that are not part of the proposal")
	fs.BoolVar(&flags.noUnified, "no-unified", false,
		"drop symbols unified with existing characters")
	fs.BoolVar(&flags.noTempNotes, "no-temp-notes", false,
		"hide old names, descriptions and design notes")
	fs.BoolVar(&flags.noFallbacks, "no-fallbacks", false,
		"show a dash instead of fallback mappings")
	fs.BoolVar(&flags.noCodes, "no-codes", false,
		"hide carrier Unicode, Shift-JIS and JIS codes")
	fs.BoolVar(&flags.noSymbolNumbers, "no-symbol-numbers", false,
		"hide carrier catalog numbers")
	fs.BoolVar(&flags.showFontChars, "show-font-chars", false,
		"render the proposal font glyph next to the image")
	fs.BoolVar(&flags.showOnlyFontChars, "show-only-font-chars", false,
		"render only the proposal font glyph")
	fs.BoolVar(&flags.showRealChars, "show-real-chars", false,
		"render real characters instead of images")
	fs.BoolVar(&flags.byCodePoint, "by-code-point", false,
		"order rows by code point instead of document order")
	fs.BoolVar(&flags.design, "design", false,
		"font design review preset (proposed glyphs only)")
}

// options folds the command line into chart options. The design preset
// is a base the individual flags can still add to.
func (f *chartFlags) options() gen.ChartOptions {
	opt := gen.ChartOptions{}
	if f.design {
		opt = gen.DesignChartOptions()
	}

	opt.OnlyInProposal = opt.OnlyInProposal || f.onlyInProposal
	opt.NoUnified = opt.NoUnified || f.noUnified
	opt.NoTempNotes = opt.NoTempNotes || f.noTempNotes
	opt.NoFallbacks = opt.NoFallbacks || f.noFallbacks
	opt.NoCodes = opt.NoCodes || f.noCodes
	opt.NoSymbolNumbers = opt.NoSymbolNumbers || f.noSymbolNumbers
	opt.ShowFontChars = opt.ShowFontChars || f.showFontChars || f.showOnlyFontChars
	opt.ShowOnlyFontChars = opt.ShowOnlyFontChars || f.showOnlyFontChars
	opt.ShowRealChars = opt.ShowRealChars || f.showRealChars
	opt.ByCodePoint = opt.ByCodePoint || f.byCodePoint

	return opt
}

func runChart(root *rootFlags, flags *chartFlags) error {
	env, err := loadEnv(root)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = gen.WriteChart(&buf, env.reg, env.carriers, env.ages, time.Now(), flags.options())
	if err != nil {
		return err
	}

	return writeOutput(flags.out, flags.outputPath, buf.Bytes())
}
