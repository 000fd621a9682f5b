package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"emoji4unicode/internal/config"
	"emoji4unicode/internal/gen"
)

type rootFlags struct {
	cfgPath string
	dataDir string
	verbose bool
}

// NewRootCommand returns the emoji4unicode root command. Generated
// output goes to out; diagnostics go to stderr.
func NewRootCommand(out io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "emoji4unicode",
		Short: "Symbol registry toolchain for the emoji encoding proposal",
		Long: dedent.Dedent(`
			emoji4unicode loads the symbol registry document together with the
			per-vendor symbol tables, allocates code points for symbols proposed
			for new encoding, and renders the derived artifacts: the background
			HTML chart, the cross-mapping data file, and the canonical form of
			the registry document itself.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
				&slog.HandlerOptions{Level: level})))
		},
	}

	addRootFlags(cmd.PersistentFlags(), flags)

	cmd.AddCommand(newCmdChart(out, flags))
	cmd.AddCommand(newCmdSources(out, flags))
	cmd.AddCommand(newCmdRewrite(out, flags))

	return cmd
}

func addRootFlags(fs *pflag.FlagSet, flags *rootFlags) {
	fs.StringVar(&flags.cfgPath, "config", "",
		"path to a YAML configuration file")
	fs.StringVar(&flags.dataDir, "data-dir", "",
		"load all data files from this directory (overrides --config paths)")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false,
		"enable debug logging")
}

// loadConfig resolves the effective configuration from the root flags.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	if flags.dataDir != "" {
		return config.ForDataDir(flags.dataDir), nil
	}
	if flags.cfgPath != "" {
		return config.LoadFile(flags.cfgPath)
	}

	return config.Default(), nil
}

// writeOutput delivers generated content to -o's target: the command's
// writer for "" or "-", a file otherwise.
func writeOutput(out io.Writer, path string, content []byte) error {
	if path == "" || path == "-" {
		_, err := out.Write(content)
		return err
	}

	return gen.WriteFile(filepath.Dir(path), filepath.Base(path), content)
}
