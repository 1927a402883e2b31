// Package main provides check-dark-scope, a pre-build guard that fails when stylesheets
// contain unscoped global dark-mode selectors such as body.dark-mode.
// Run: go run ./scripts/check-dark-scope
// Or:  go run ./scripts/check-dark-scope --root apps/web/src --format json
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"assetmgmt/scripts/check-dark-scope/config"
	"assetmgmt/scripts/check-dark-scope/guard"
	"assetmgmt/scripts/check-dark-scope/log"
	"assetmgmt/scripts/check-dark-scope/reporter"
)

// Exit codes.
const (
	exitOK         = 0
	exitViolations = 1
	exitError      = 2
)

type flagValues struct {
	configPath    string
	root          string
	patterns      []string
	extraPatterns []string
	extensions    []string
	exclude       []string
	workers       int
	format        string
	verbose       bool
	noColor       bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

// run executes the command and returns the process exit code.
// Variables from a .env file in the working directory fill in whatever getenv leaves unset.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	getenv = withDotEnv(getenv)

	var flags flagValues
	code := exitOK
	cmd := newRootCmd(&flags, stdout, stderr, getenv, &code)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		reporter.New(stdout, stderr, reporter.Options{Color: useColor(flags.noColor, getenv, stderr)}).Error(err)
		return exitError
	}
	return code
}

// withDotEnv layers .env values under getenv, the way godotenv.Load never overrides
// variables that are already set.
func withDotEnv(getenv func(string) string) func(string) string {
	values, err := godotenv.Read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("ignoring unreadable .env", "error", err)
		}
		return getenv
	}
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return values[key]
	}
}

func newRootCmd(flags *flagValues, stdout, stderr io.Writer, getenv func(string) string, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-dark-scope",
		Short: "Fail when stylesheets use unscoped global dark-mode selectors",
		Long: "Scans the front-end stylesheet tree for global dark-mode selectors (body.dark-mode, html.dark-mode, ...)\n" +
			"and exits non-zero if any are found. Dark-mode rules must be scoped under the application root.\n\n" +
			"Exit codes: 0 clean, 1 forbidden selectors found, 2 configuration or scan error.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if flags.verbose {
				level = slog.LevelDebug
			}
			log.SetOutput(stderr, level)

			cfg, err := resolveConfig(cmd, flags, getenv)
			if err != nil {
				return err
			}
			log.Debug("resolved options", "options", cfg.GuardOptions().String(), "format", cfg.Format)

			result, err := guard.Run(cmd.Context(), cfg.GuardOptions())
			if err != nil {
				return err
			}

			rep := reporter.New(stdout, stderr, reporter.Options{
				Format:  cfg.Format,
				Color:   useColor(flags.noColor, getenv, stdout, stderr),
				Verbose: flags.verbose,
			})
			if err := rep.Report(result); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if !result.Passed() {
				*code = exitViolations
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "Path to config file (default: nearest "+config.ConfigFileName+")")
	f.StringVar(&flags.root, "root", config.DefaultRoot, "Stylesheet directory to scan")
	f.StringSliceVar(&flags.patterns, "pattern", nil, "Forbidden selector substring, replaces the default set (repeatable or comma-separated)")
	f.StringSliceVar(&flags.extraPatterns, "extra-pattern", nil, "Forbidden selector substring added to the set (repeatable or comma-separated)")
	f.StringSliceVar(&flags.extensions, "ext", nil, "Stylesheet file extension (default .css)")
	f.StringSliceVar(&flags.exclude, "exclude", nil, "Glob relative to the root to skip (repeatable)")
	f.IntVar(&flags.workers, "workers", 1, "Number of files scanned concurrently")
	f.StringVar(&flags.format, "format", reporter.FormatText, "Output format: text or json")
	f.BoolVar(&flags.verbose, "verbose", false, "Show debug logging and file counts")
	f.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	return cmd
}

// resolveConfig layers defaults, config file, environment, and explicitly set flags.
func resolveConfig(cmd *cobra.Command, flags *flagValues, getenv func(string) string) (*config.Config, error) {
	cfg := config.Default()

	configPath := flags.configPath
	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		configPath, err = config.FindConfigFile(cwd)
		if err != nil {
			return nil, err
		}
	}
	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			return nil, err
		}
		log.Info("loaded config file", "path", configPath)
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("root") {
		cfg.Root = flags.root
	}
	if changed("pattern") {
		cfg.Patterns = flags.patterns
	}
	if changed("extra-pattern") {
		cfg.ExtraPatterns = append(cfg.ExtraPatterns, flags.extraPatterns...)
	}
	if changed("ext") {
		cfg.Extensions = flags.extensions
	}
	if changed("exclude") {
		cfg.Exclude = flags.exclude
	}
	if changed("workers") {
		cfg.Workers = flags.workers
	}
	if changed("format") {
		cfg.Format = flags.format
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// useColor reports whether every writer is a color-capable terminal and --no-color is unset.
func useColor(noColor bool, getenv func(string) string, writers ...io.Writer) bool {
	if noColor {
		return false
	}
	for _, w := range writers {
		f, ok := w.(*os.File)
		if !ok || !reporter.ColorEnabled(f, getenv) {
			return false
		}
	}
	return true
}
