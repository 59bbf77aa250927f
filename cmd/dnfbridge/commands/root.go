package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dnfbridge/dnfbridge/pkg/dnf"
	"github.com/dnfbridge/dnfbridge/pkg/engine"
	"github.com/dnfbridge/dnfbridge/pkg/module"
	"github.com/dnfbridge/dnfbridge/pkg/telemetry"
)

var (
	// Global flags
	verbose bool
	logJSON bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dnfbridge",
		Short: "dnfbridge - package state convergence over dnf",
		Long: `dnfbridge lets a configuration-management controller drive the host's
dnf package engine: install, remove, upgrade, and enumerate packages,
groups, and repositories, reporting exactly what changed as JSON on
stdout. All resolution, metadata, GPG verification, and transaction
work stays inside dnf.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")

	// Add subcommands
	rootCmd.AddCommand(newConvergeCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newRunCommand())

	return rootCmd
}

func newLogger() zerolog.Logger {
	level := "info"
	if verbose {
		level = "debug"
	}
	format := "console"
	if logJSON {
		format = "json"
	}
	logger, err := telemetry.NewLogger(telemetry.LoggingConfig{
		Level:  level,
		Format: format,
		Output: "stderr",
	})
	if err != nil {
		return zerolog.Nop()
	}
	return logger
}

func dnfOpener(logger zerolog.Logger) module.SessionOpener {
	return func(ctx context.Context, opts engine.Options) (engine.Session, error) {
		return dnf.Open(ctx, opts, logger)
	}
}

// emit writes the response to stdout and maps a failed invocation onto a
// non-zero process exit.
func emit(resp *module.Response) error {
	if err := module.NewEncoder(os.Stdout).Encode(resp); err != nil {
		return err
	}
	if resp.RC != 0 {
		return errors.New(resp.Msg)
	}
	return nil
}
