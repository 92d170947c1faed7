// Package cli provides the Cobra command structure for syntree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/syntree/internal/configloader"
	"github.com/yaklabco/syntree/internal/logging"
	"github.com/yaklabco/syntree/pkg/config"
	"github.com/yaklabco/syntree/pkg/lang"
	"github.com/yaklabco/syntree/pkg/lang/builtin"
	"github.com/yaklabco/syntree/pkg/lang/markdown"
	"github.com/yaklabco/syntree/pkg/runner"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	noConfig   bool
	language   string
	format     string
	color      string
	logLevel   string
	jobs       int
	debug      bool
}

// session is the resolved state a subcommand runs with.
type session struct {
	cfg        *config.Config
	logger     *log.Logger
	workDir    string
	loadedFrom []string
}

// NewRootCommand creates the root syntree command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "syntree",
		Short: "Inspect and edit lossless syntax trees",
		Long: `syntree parses source files into lossless syntax trees.

Every byte of the input, whitespace and malformed text included, is kept in
the tree, so printing a tree reproduces its file exactly. Trees can be dumped,
measured across whole directories, and edited without re-parsing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config file")
	pf.BoolVar(&flags.noConfig, "no-config", false, "ignore user and project config files")
	pf.StringVarP(&flags.language, "language", "l", "", "force a language instead of detecting it")
	pf.StringVar(&flags.format, "format", "", "output format: text, json")
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: "+strings.Join(logging.Levels, ", "))
	pf.IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = one per CPU)")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newParseCommand(flags))
	rootCmd.AddCommand(newEditCommand(flags))
	rootCmd.AddCommand(newStatsCommand(flags))
	rootCmd.AddCommand(newLangsCommand(flags))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// load resolves the configuration for cmd. Global flags that were set on the
// command line are applied last, followed by local, which carries the
// subcommand's own overrides.
func (g *globalFlags) load(cmd *cobra.Command, local func(*config.Config)) (*session, error) {
	ctx := commandContext(cmd)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	changed := cmd.Flags().Changed
	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        g.configPath,
		IgnoreUserConfig:    g.noConfig,
		IgnoreProjectConfig: g.noConfig,
		Overrides: func(cfg *config.Config) {
			if changed("language") {
				cfg.Language = g.language
			}
			if changed("format") {
				cfg.Format = config.OutputFormat(g.format)
			}
			if changed("color") {
				cfg.Color = config.ColorMode(g.color)
			}
			if changed("log-level") {
				cfg.LogLevel = g.logLevel
			}
			if changed("jobs") {
				cfg.Jobs = g.jobs
			}
			if g.debug {
				cfg.LogLevel = "debug"
			}
			if local != nil {
				local(cfg)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), result.Config.LogLevel)
	logging.SetDefault(logger)
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}

	cmd.SetContext(logging.WithLogger(ctx, logger))

	return &session{
		cfg:        result.Config,
		logger:     logger,
		workDir:    workDir,
		loadedFrom: result.LoadedFrom,
	}, nil
}

// registry returns the language registry matching the session's settings.
// The shared default registry is used unless an option departs from it.
func (s *session) registry() (*lang.Registry, error) {
	defaults := builtin.DefaultOptions()
	if s.cfg.Markdown.GFM == defaults.Markdown.GFM {
		return lang.DefaultRegistry, nil
	}

	registry, err := builtin.NewRegistry(builtin.Options{
		Markdown: markdown.Options{GFM: s.cfg.Markdown.GFM},
	})
	if err != nil {
		return nil, fmt.Errorf("build language registry: %w", err)
	}
	return registry, nil
}

func (s *session) runner() (*runner.Runner, error) {
	registry, err := s.registry()
	if err != nil {
		return nil, err
	}
	return runner.New(registry), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// isUsage reports whether err stems from bad command-line input.
func isUsage(err error) bool {
	return errors.Is(err, ErrUsage) || errors.Is(err, lang.ErrUnknownLanguage)
}
