// Command structgen generates structgen_gen.go for packages containing
// Structgen directives.
//
// Usage:
//
//	structgen [flags] [packages]
//
// Without packages, the package in the working directory is processed.
// Defaults of the flags can be written in structgen.toml at the module root.
package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	structgeninternal "github.com/sublee/structgen/internal/structgen"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the command-line flags.
type options struct {
	tags    string
	tests   bool
	output  string
	color   string
	config  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "structgen [flags] [packages]",
		Short:         "Generate boilerplate code for struct types",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.tags, "tags", "b", "", "comma-separated build tags")
	flags.BoolVarP(&opts.tests, "tests", "t", false, "include tests")
	flags.StringVarP(&opts.output, "output", "o", defaultOutput, "output file name")
	flags.StringVarP(&opts.color, "color", "c", "auto", "colorize (auto|always|never)")
	flags.StringVar(&opts.config, "config", "", "path to structgen.toml (default: search upward)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print debug logs")
	return cmd
}

func run(cmd *cobra.Command, opts options, patterns []string) error {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "structgen"})
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	structgeninternal.Version = Version

	wd, err := os.Getwd()
	if err != nil {
		logger.Error("cannot get working directory", "err", err)
		return err
	}

	cfg, path, err := loadConfig(wd, opts.config)
	if err != nil {
		logger.Error("cannot load config", "err", err)
		return err
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	opts = cfg.apply(opts, cmd.Flags().Changed)

	color, err := useColor(opts.color)
	if err != nil {
		logger.Error("invalid flag", "err", err)
		return err
	}

	logger.Debug("loading packages", "patterns", patterns, "tags", opts.tags, "tests", opts.tests)
	outs, err := structgeninternal.Main(cmd.Context(), wd, os.Environ(), opts.tags, opts.tests, opts.output, patterns)
	if err != nil {
		message := err.Error()
		if color {
			message = colorize(message)
		}
		cmd.PrintErrln(message)
		return err
	}

	for out, code := range outs {
		if err := os.WriteFile(out, code, 0o644); err != nil {
			logger.Error("cannot write generated code", "path", out, "err", err)
			return err
		}

		if relOut, err := filepath.Rel(wd, out); err == nil {
			out = relOut
		}
		logger.Info("generated", "path", out)
	}
	return nil
}
