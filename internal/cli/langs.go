package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	ui "github.com/yaklabco/syntree/internal/ui/pretty"
	"github.com/yaklabco/syntree/pkg/config"
	"github.com/yaklabco/syntree/pkg/lang"
)

// langInfo is one row of the langs listing.
type langInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

func newLangsCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "langs",
		Aliases: []string{"languages"},
		Short:   "List the supported languages",
		Long: `List the languages syntree can parse and the file extensions that
select each of them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := global.load(cmd, nil)
			if err != nil {
				return err
			}
			registry, err := sess.registry()
			if err != nil {
				return err
			}
			return writeLangs(cmd, registry, sess.cfg)
		},
	}
}

func writeLangs(cmd *cobra.Command, registry *lang.Registry, cfg *config.Config) error {
	languages := registry.Languages()
	infos := make([]langInfo, 0, len(languages))
	for _, language := range languages {
		infos = append(infos, langInfo{Name: language.Name(), Extensions: language.Extensions()})
	}

	out := cmd.OutOrStdout()
	if cfg.Format == config.FormatJSON {
		data, err := json.Marshal(infos)
		if err != nil {
			return fmt.Errorf("encode languages: %w", err)
		}
		data = pretty.Pretty(data)
		if ui.IsColorEnabled(string(cfg.Color), out) {
			data = pretty.Color(data, nil)
		}
		_, err = out.Write(data)
		return err
	}

	styles := ui.NewStyles(ui.IsColorEnabled(string(cfg.Color), out))
	nameWidth := len("LANGUAGE")
	for _, info := range infos {
		nameWidth = max(nameWidth, ui.Width(info.Name))
	}

	var b strings.Builder
	b.WriteString(styles.TableHeader.Render(ui.PadRight("LANGUAGE", nameWidth) + "  EXTENSIONS"))
	b.WriteByte('\n')
	for _, info := range infos {
		b.WriteString(styles.NodeKind.Render(ui.PadRight(info.Name, nameWidth)))
		b.WriteString("  ")
		b.WriteString(styles.Dim.Render(strings.Join(info.Extensions, " ")))
		b.WriteByte('\n')
	}
	_, err := fmt.Fprint(out, b.String())
	return err
}
