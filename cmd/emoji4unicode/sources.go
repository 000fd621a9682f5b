package main

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"

	"emoji4unicode/internal/gen"
)

type sourcesFlags struct {
	out        io.Writer
	outputPath string
}

func newCmdSources(out io.Writer, root *rootFlags) *cobra.Command {
	flags := &sourcesFlags{out: out}

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Render the cross-mapping data file",
		Long: dedent.Dedent(`
			Render EmojiSources.txt: the semicolon-delimited table mapping each
			symbol's Unicode code point or sequence to the equivalent DoCoMo,
			KDDI and SoftBank Shift-JIS codes. Only round-trip mappings appear;
			best-fit fallbacks do not.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSources(root, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "",
		"write the data file to this path instead of stdout")

	return cmd
}

func runSources(root *rootFlags, flags *sourcesFlags) error {
	env, err := loadEnv(root)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = gen.WriteSources(&buf, env.reg, env.carriers, time.Now(), slog.Default())
	if err != nil {
		return err
	}

	return writeOutput(flags.out, flags.outputPath, buf.Bytes())
}
