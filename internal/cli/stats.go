package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/syntree/internal/logging"
	"github.com/yaklabco/syntree/pkg/config"
	"github.com/yaklabco/syntree/pkg/reporter"
)

type statsFlags struct {
	parseFlags
	summaryOnly bool
}

func newStatsCommand(global *globalFlags) *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats [paths...]",
		Short: "Measure the trees of many files",
		Long: `Parse files and print a table of tree statistics.

Each row shows the size of one file's tree: nodes, tokens, depth and the
number of ERROR nodes. With --shared-cache all workers intern through one
cache, and the summary shows how many subtrees were shared across files.

Examples:
  syntree stats                       # Every known file below .
  syntree stats --shared-cache src/   # Measure subtree sharing
  syntree stats --summary-only docs/  # Totals only
  syntree stats --format json docs/   # Machine-readable statistics`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, global, flags)
		},
	}

	addParseFlags(cmd, &flags.parseFlags)
	cmd.Flags().BoolVar(&flags.summaryOnly, "summary-only", false, "print totals without the per-file table")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, global *globalFlags, flags *statsFlags) error {
	sess, err := global.load(cmd, flags.overrides(cmd))
	if err != nil {
		return err
	}

	result, err := sess.parse(cmd, args)
	if err != nil {
		return err
	}

	opts := reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      reporter.FormatStats,
		Color:       string(sess.cfg.Color),
		ShowSummary: true,
		WorkingDir:  sess.workDir,
	}
	switch {
	case sess.cfg.Format == config.FormatJSON:
		// Trees are left out; only statistics are of interest here.
		opts.Format = reporter.FormatJSON
		opts.MaxDepth = 1
	case flags.summaryOnly:
		opts.Format = reporter.FormatSummary
	}

	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(cmd.Context(), result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	sess.logger.Debug("cache",
		logging.FieldShared, sess.cfg.Cache.Shared,
		logging.FieldCacheHitRate, result.Stats.Cache.HitRate(),
	)
	sess.logFailures(result)
	return resultError(result, false)
}
