// Package main is the entry point for the syntree CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/yaklabco/syntree/internal/cli"
	"github.com/yaklabco/syntree/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Replaced once a command has loaded its configuration.
	logging.SetDefault(logging.NewInteractive())

	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.ExecuteContext(ctx)
	code := cli.ExitCode(err)

	// Parse failures and error nodes were already reported.
	if err != nil && !errors.Is(err, cli.ErrParseFailures) && !errors.Is(err, cli.ErrErrorNodes) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return code
}
