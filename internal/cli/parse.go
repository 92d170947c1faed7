package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/syntree/internal/logging"
	"github.com/yaklabco/syntree/pkg/config"
	"github.com/yaklabco/syntree/pkg/reporter"
	"github.com/yaklabco/syntree/pkg/runner"
)

// stdinPath is the argument that makes parse read standard input.
const stdinPath = "-"

// stdinName is how standard input is named in reports.
const stdinName = "<stdin>"

type parseFlags struct {
	maxDepth       int
	noOffsets      bool
	compact        bool
	summary        bool
	strict         bool
	sharedCache    bool
	followSymlinks bool
	include        []string
	exclude        []string
}

func newParseCommand(global *globalFlags) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse files and print their syntax trees",
		Long: `Parse files and print their syntax trees.

Directories are walked recursively for files of every registered language.
Use "-" to read standard input; its language is detected from the content
unless --language is given.

Examples:
  syntree parse expr.calc             # Print one tree
  syntree parse --depth 2 docs/       # Print the top of every tree in docs
  syntree parse --format json a.decl  # Nested JSON output
  echo '1 + 2' | syntree parse -l calc -`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, global, flags)
		},
	}

	addParseFlags(cmd, flags)
	cmd.Flags().IntVar(&flags.maxDepth, "depth", 0, "stop printing below this depth (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.noOffsets, "no-offsets", false, "omit start..end ranges")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print aggregate statistics after the trees")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with an error when trees contain ERROR nodes")

	return cmd
}

// addParseFlags registers the discovery flags shared by parse and stats.
func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().BoolVar(&flags.sharedCache, "shared-cache", false, "intern every file through one shared cache")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only parse files matching these globs")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "skip files and directories matching these globs")
}

// overrides applies the flags that were set on cmd to cfg.
func (f *parseFlags) overrides(cmd *cobra.Command) func(*config.Config) {
	changed := cmd.Flags().Changed
	return func(cfg *config.Config) {
		if changed("shared-cache") {
			cfg.Cache.Shared = f.sharedCache
		}
		if changed("follow-symlinks") {
			cfg.Files.FollowSymlinks = f.followSymlinks
		}
		if changed("include") {
			cfg.Files.Include = f.include
		}
		if changed("exclude") {
			cfg.Files.Exclude = f.exclude
		}
		if changed("depth") {
			cfg.Output.MaxDepth = f.maxDepth
		}
		if changed("no-offsets") {
			cfg.Output.Offsets = !f.noOffsets
		}
	}
}

func runParse(cmd *cobra.Command, args []string, global *globalFlags, flags *parseFlags) error {
	sess, err := global.load(cmd, flags.overrides(cmd))
	if err != nil {
		return err
	}

	result, err := sess.parse(cmd, args)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       string(sess.cfg.Color),
		Offsets:     sess.cfg.Output.Offsets,
		MaxDepth:    sess.cfg.Output.MaxDepth,
		ShowSummary: flags.summary,
		Compact:     flags.compact,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(cmd.Context(), result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	sess.logFailures(result)
	return resultError(result, flags.strict)
}

// parse runs the parser over args, reading standard input for "-".
func (s *session) parse(cmd *cobra.Command, args []string) (*runner.Result, error) {
	run, err := s.runner()
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()

	if slices.Contains(args, stdinPath) {
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: %q cannot be combined with other paths", ErrUsage, stdinPath)
		}
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return runner.NewResult(run.ParseSource(ctx, stdinName, content, s.cfg.Language, nil)), nil
	}

	opts := runner.OptionsFromConfig(s.cfg, args)
	opts.WorkingDir = s.workDir

	s.logger.Debug("starting run",
		logging.FieldPaths, opts.Paths,
		logging.FieldLanguage, opts.Language,
		logging.FieldJobs, opts.Jobs,
		logging.FieldShared, opts.SharedCache,
	)

	result, err := run.Run(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse run failed: %w", err)
	}
	return result, nil
}

func (s *session) logFailures(result *runner.Result) {
	for _, file := range result.Files {
		if file.Error != nil {
			s.logger.Error("parse failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		}
	}
}
