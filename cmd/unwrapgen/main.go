package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	unwrapgeninternal "github.com/sublee/unwrapgen/internal/unwrapgen"
)

var Version = "dev"

func init() {
	unwrapgeninternal.Version = Version
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the command-line flags. Flags set explicitly on the command
// line take precedence over the config file.
type options struct {
	Tags       string
	Tests      bool
	Output     string
	Color      string
	Verbose    bool
	ConfigPath string
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "unwrapgen [packages]",
		Short: "Generate unwrapper functions for union types",
		Long: `Unwrapgen loads the given packages with the "unwrapgen" build tag, finds
unwrapgen.Union directives, and writes unwrapper functions into each package.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Tags, "tags", "b", "", "comma-separated build tags")
	cmd.Flags().BoolVarP(&opts.Tests, "tests", "t", false, "include tests")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "unwrapgen_gen.go", "output file name")
	cmd.Flags().StringVarP(&opts.Color, "color", "c", "auto", "colorize (auto|always|never)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "report unwrappers and skipped variants")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to unwrapgen.yaml or unwrapgen.toml")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fail(cmd, false, err)
	}

	if err := applyConfigFile(cmd, opts, wd); err != nil {
		return fail(cmd, false, err)
	}

	colored, err := useColor(opts.Color)
	if err != nil {
		return fail(cmd, false, err)
	}

	cfg := unwrapgeninternal.Config{
		Dir:     wd,
		Env:     os.Environ(),
		Tags:    opts.Tags,
		Tests:   opts.Tests,
		OutFile: opts.Output,
	}
	if opts.Verbose {
		cfg.Log = cmd.OutOrStdout()
	}

	outs, err := unwrapgeninternal.Main(cmd.Context(), cfg, args)
	if err != nil {
		return fail(cmd, colored, err)
	}

	generated, err := writeOutputs(outs)
	if err != nil {
		return fail(cmd, false, err)
	}

	for _, out := range generated {
		if relOut, err := filepath.Rel(wd, out); err == nil {
			out = relOut
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Generated:", out)
	}
	return nil
}

// writeOutputs writes every generated file concurrently. It returns the written
// paths in sorted order.
func writeOutputs(outs map[string][]byte) ([]string, error) {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		written []string
	)
	for out, code := range outs {
		g.Go(func() error {
			if err := os.WriteFile(out, code, 0o644); err != nil {
				return err
			}
			mu.Lock()
			written = append(written, out)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.Sort(written)
	return written, nil
}

// fail prints err to stderr and returns it so that the command exits with a
// non-zero status.
func fail(cmd *cobra.Command, colored bool, err error) error {
	message := err.Error()
	if colored {
		message = colorize(message)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), message)
	return err
}
