package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lithammer/dedent"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"emoji4unicode/internal/xmlfmt"
)

type rewriteFlags struct {
	out          io.Writer
	outputPath   string
	check        bool
	contextLines int
}

func newCmdRewrite(out io.Writer, root *rootFlags) *cobra.Command {
	flags := &rewriteFlags{out: out}

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Rewrite the registry document into canonical form",
		Long: dedent.Dedent(`
			Re-serialize the registry XML document into its canonical
			diff-friendly layout. Without flags the document is rewritten in
			place; with --check nothing is written and a unified diff is
			printed when the document on disk is not canonical.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(root, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "",
		"write the canonical document here instead of in place (- for stdout)")
	cmd.Flags().BoolVar(&flags.check, "check", false,
		"verify the document is canonical without writing")
	cmd.Flags().IntVarP(&flags.contextLines, "context-lines", "c", 3,
		"how many lines of context in the --check diff")

	return cmd
}

func runRewrite(root *rootFlags, flags *rewriteFlags) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(cfg.Document)
	if err != nil {
		return err
	}

	canonical, err := xmlfmt.RewriteString(string(src))
	if err != nil {
		return err
	}

	if flags.check {
		if canonical == string(src) {
			return nil
		}
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(src)),
			B:        difflib.SplitLines(canonical),
			FromFile: cfg.Document,
			ToFile:   "canonical",
			Context:  flags.contextLines,
		}
		text, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			return err
		}
		fmt.Fprint(flags.out, text)
		return fmt.Errorf("%s is not in canonical form", cfg.Document)
	}

	if flags.outputPath == "" {
		// In-place rewrite.
		return os.WriteFile(cfg.Document, []byte(canonical), 0o644)
	}

	return writeOutput(flags.out, flags.outputPath, []byte(canonical))
}
