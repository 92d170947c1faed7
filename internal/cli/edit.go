package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/yaklabco/syntree/internal/logging"
	"github.com/yaklabco/syntree/pkg/edit"
	"github.com/yaklabco/syntree/pkg/fsutil"
	"github.com/yaklabco/syntree/pkg/lang"
	"github.com/yaklabco/syntree/pkg/red"
	"github.com/yaklabco/syntree/pkg/reporter"
	"github.com/yaklabco/syntree/pkg/runner"
)

type editFlags struct {
	at        string
	text      string
	editsFile string
	write     bool
	backup    bool
	reparse   bool
	tree      bool
	restore   bool
}

func newEditCommand(global *globalFlags) *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Apply text edits to a file's syntax tree",
		Long: `Apply text edits to a file's syntax tree.

Each edit replaces a byte range start..end of the original text. Edits that
stay inside one token, and leave it lexing as the same kind of token, are
applied to the tree directly, rebuilding only the path from that token to the
root. Other edits are applied to the text, which is then parsed again.

A batch of edits can be read from a JSON file holding an array of
{"start": 0, "end": 1, "text": "x"} objects, or an object with such an array
under "edits". A "range": "0..1" string may replace start and end.

Examples:
  syntree edit expr.calc --at 4..5 --text 3          # Print the edited text
  syntree edit expr.calc --at 4..5 --text 3 --tree   # Print the edited tree
  syntree edit notes.md --edits fixes.json --write --backup
  syntree edit notes.md --restore                     # Undo a --backup write`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.at, "at", "", "byte range to replace, as start..end")
	cmd.Flags().StringVar(&flags.text, "text", "", "replacement text for --at")
	cmd.Flags().StringVar(&flags.editsFile, "edits", "", "JSON file with a batch of edits")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to FILE")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a copy of the original next to FILE when writing")
	cmd.Flags().BoolVar(&flags.reparse, "reparse", false, "always apply edits to the text and parse again")
	cmd.Flags().BoolVar(&flags.tree, "tree", false, "print the edited tree instead of its text")
	cmd.Flags().BoolVar(&flags.restore, "restore", false, "put back the original saved by --backup")
	cmd.MarkFlagsMutuallyExclusive("at", "edits", "restore")
	cmd.MarkFlagsOneRequired("at", "edits", "restore")

	return cmd
}

func runEdit(cmd *cobra.Command, path string, global *globalFlags, flags *editFlags) error {
	if flags.write && path == stdinPath {
		return fmt.Errorf("%w: --write needs a file, not stdin", ErrUsage)
	}

	sess, err := global.load(cmd, nil)
	if err != nil {
		return err
	}
	ctx := logging.WithFields(cmd.Context(), logging.FieldPath, path)

	if flags.restore {
		return restoreBackup(ctx, path)
	}

	edits, err := flags.edits()
	if err != nil {
		return err
	}

	content, snap, name, err := readEditSource(cmd, path)
	if err != nil {
		return err
	}

	run, err := sess.runner()
	if err != nil {
		return err
	}
	before := run.ParseSource(ctx, name, content, sess.cfg.Language, nil)
	if before.Error != nil {
		return fmt.Errorf("%w: %w", ErrParseFailures, before.Error)
	}

	after, err := applyEdits(ctx, run, before, content, edits, flags.reparse)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)
	logger.Debug("applied edits",
		logging.FieldEdits, len(edits),
		logging.FieldBytes, after.Stats.Bytes,
	)

	if flags.write {
		if flags.backup {
			if _, err := fsutil.Backup(ctx, path); err != nil {
				return err
			}
		}
		wrote, err := fsutil.WriteSnapshot(ctx, snap, []byte(after.Root.String()))
		if err != nil {
			return err
		}
		logger.Info("edited", logging.FieldWrite, wrote)
	}

	switch {
	case flags.tree:
		rep, err := reporter.New(reporter.Options{
			Writer:     cmd.OutOrStdout(),
			Format:     reporter.FormatText,
			Color:      string(sess.cfg.Color),
			Offsets:    sess.cfg.Output.Offsets,
			MaxDepth:   sess.cfg.Output.MaxDepth,
			WorkingDir: sess.workDir,
		})
		if err != nil {
			return fmt.Errorf("create reporter: %w", err)
		}
		if _, err := rep.Report(ctx, runner.NewResult(after)); err != nil {
			return fmt.Errorf("report tree: %w", err)
		}
	case !flags.write:
		if _, err := io.WriteString(cmd.OutOrStdout(), after.Root.String()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func restoreBackup(ctx context.Context, path string) error {
	if path == stdinPath {
		return fmt.Errorf("%w: --restore needs a file, not stdin", ErrUsage)
	}
	restored, err := fsutil.Restore(ctx, path)
	if err != nil {
		return err
	}
	if !restored {
		return fmt.Errorf("%w: no backup at %s", ErrUsage, fsutil.BackupPath(path))
	}
	logging.FromContext(ctx).Info("restored from backup")
	return nil
}

// applyEdits edits the tree of before. Edits that do not fit in single
// tokens, or that change what a token lexes as, fall back to editing the text
// and parsing it again. Languages that cannot relex a token always re-parse.
func applyEdits(
	ctx context.Context,
	run *runner.Runner,
	before runner.FileOutcome,
	content []byte,
	edits []edit.TextEdit,
	reparse bool,
) (runner.FileOutcome, error) {
	relexer, canRelex := before.Language.(lang.Relexer)
	if !reparse && canRelex {
		root, err := edit.ApplyAll(red.NewRoot(before.Root), edits, relexer.RelexToken)
		if err == nil {
			after := before
			after.Root = root.Green()
			after.Stats = runner.Measure(after.Root, before.Language)
			return after, nil
		}
		if !errors.Is(err, edit.ErrEditSpansTokens) && !errors.Is(err, edit.ErrTokenChanged) {
			return runner.FileOutcome{}, err
		}
		logging.FromContext(ctx).Debug("edit does not fit one token; parsing again", logging.FieldError, err)
	}

	text, err := edit.ApplyText(content, edits)
	if err != nil {
		return runner.FileOutcome{}, err
	}
	after := run.ParseSource(ctx, before.Path, text, before.Language.Name(), nil)
	if after.Error != nil {
		return runner.FileOutcome{}, after.Error
	}
	return after, nil
}

// readEditSource reads FILE, or standard input for "-". Files come with a
// snapshot so a later write can detect concurrent changes.
func readEditSource(cmd *cobra.Command, path string) ([]byte, *fsutil.Snapshot, string, error) {
	if path == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return content, nil, stdinName, nil
	}

	content, snap, err := fsutil.Read(cmd.Context(), path)
	if err != nil {
		return nil, nil, "", err
	}
	return content, snap, path, nil
}

// edits collects the edits requested on the command line.
func (f *editFlags) edits() ([]edit.TextEdit, error) {
	if f.editsFile == "" {
		start, end, err := parseRange(f.at)
		if err != nil {
			return nil, err
		}
		return []edit.TextEdit{edit.Replace(start, end, f.text)}, nil
	}

	data, err := os.ReadFile(f.editsFile)
	if err != nil {
		return nil, fmt.Errorf("read edits: %w", err)
	}
	return parseEdits(data)
}

// parseRange parses "start..end". A single offset "n" means the empty range
// n..n, which inserts.
func parseRange(s string) (int, int, error) {
	startStr, endStr, found := strings.Cut(strings.TrimSpace(s), "..")
	if !found {
		endStr = startStr
	}

	start, err := strconv.Atoi(startStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad range %q: start must be an integer", ErrUsage, s)
	}
	end, err := strconv.Atoi(endStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad range %q: end must be an integer", ErrUsage, s)
	}
	return start, end, nil
}

// parseEdits decodes a JSON batch of edits.
func parseEdits(data []byte) ([]edit.TextEdit, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: edits file is not valid JSON", ErrUsage)
	}

	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("edits")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: edits must be an array or an object with an \"edits\" array", ErrUsage)
	}

	var edits []edit.TextEdit
	var errs []error
	list.ForEach(func(key, value gjson.Result) bool {
		e, err := parseEdit(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("edit %d: %w", key.Int(), err))
			return true
		}
		edits = append(edits, e)
		return true
	})
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return edits, nil
}

func parseEdit(value gjson.Result) (edit.TextEdit, error) {
	if !value.IsObject() {
		return edit.TextEdit{}, errors.New("not an object")
	}

	text := value.Get("text")
	if text.Exists() && text.Type != gjson.String {
		return edit.TextEdit{}, errors.New("text must be a string")
	}

	if rng := value.Get("range"); rng.Exists() {
		start, end, err := parseRange(rng.String())
		if err != nil {
			return edit.TextEdit{}, err
		}
		return edit.Replace(start, end, text.String()), nil
	}

	start, end := value.Get("start"), value.Get("end")
	if start.Type != gjson.Number {
		return edit.TextEdit{}, errors.New("start must be a number")
	}
	if !end.Exists() {
		end = start
	} else if end.Type != gjson.Number {
		return edit.TextEdit{}, errors.New("end must be a number")
	}
	return edit.Replace(int(start.Int()), int(end.Int()), text.String()), nil
}
