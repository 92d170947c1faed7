package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/syntree/internal/configloader"
	ui "github.com/yaklabco/syntree/internal/ui/pretty"
	"github.com/yaklabco/syntree/pkg/config"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect syntree configuration",
		Long: `Inspect how syntree resolves its configuration.

Settings are layered: defaults, then the user config, the project config, an
explicit --config file, SYNTREE_* environment variables and finally flags.`,
		Args: cobra.NoArgs,
	}

	cmd.AddCommand(newConfigShowCommand(global))
	cmd.AddCommand(newConfigPathCommand())
	cmd.AddCommand(newConfigEnvCommand())
	cmd.AddCommand(newConfigValidateCommand())
	return cmd
}

func newConfigShowCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := global.load(cmd, nil)
			if err != nil {
				return err
			}

			header := "# Resolved from built-in defaults"
			if len(sess.loadedFrom) > 0 {
				header = "# Resolved from " + strings.Join(sess.loadedFrom, ", ")
			}
			data, err := sess.cfg.ToYAMLWithHeader(header)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where configuration files are looked up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			paths, err := configloader.DiscoverPaths(commandContext(cmd), workDir)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrConfig, err)
			}

			found := func(path string) string {
				if path == "" {
					return "(none)"
				}
				return path
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "user dir: %s\nuser:     %s\nproject:  %s\n",
				configloader.UserConfigDir(), found(paths.User), found(paths.Project))
			return err
		},
	}
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables syntree reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := configloader.ListEnvVars()
			width := 0
			for _, v := range vars {
				width = max(width, ui.Width(v.Name))
			}

			var b strings.Builder
			for _, v := range vars {
				b.WriteString(ui.PadRight(v.Name, width))
				b.WriteString("  ")
				b.WriteString(v.Description)
				b.WriteByte('\n')
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a configuration file for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			cfg, err := config.FromYAML(data)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
			}

			validation := cfg.ValidateWithFile(path)
			for _, msg := range validation.AllMessages() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), msg); err != nil {
					return err
				}
			}
			if err := validation.Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrConfig, err)
			}
			if len(validation.Warnings) == 0 {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			return err
		},
	}
}
