// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/naka-gawa/grass-reporter/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command. Logs and errors go to the command's
// error stream.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "grass-reporter [check|daily-streak]",
		Short: "Reports GitHub contribution activity to Discord.",
		Long: `grass-reporter checks a user's GitHub contribution calendar and posts to a
Discord webhook. It is meant to be triggered by an external scheduler.

  check         (default) mention the user if today has no contributions yet
  daily-streak  post the number of consecutive days with contributions up to yesterday

Dates are computed in UTC+9. Configuration is read from environment variables.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReport,
	}

	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Log the message instead of posting it to the webhook")
	return rootCmd
}

// Execute runs the root command and exits with status 1 on any failure.
// This is called by main.main().
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// printError reports err, followed by the variable list when configuration
// is incomplete.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var missingErr *config.MissingEnvError
	if errors.As(err, &missingErr) {
		fmt.Fprintln(w)
		fmt.Fprint(w, config.Usage())
	}
}

// newLogger creates a text logger on w. verbose overrides level.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	v := new(slog.LevelVar)
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
	if verbose {
		v.Set(slog.LevelDebug)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: v}))
}
