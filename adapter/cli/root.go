// Package cli implements the slotwise command line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/slotwise/pkg/observability"
)

var (
	verbose bool
	logger  *slog.Logger
)

type commandTiming struct {
	startedAt time.Time
}

type commandTimingKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slotwise",
	Short: "slotwise - interview slot scheduling and ranking engine",
	Long: `slotwise finds, ranks, and books interview slots.

It enumerates feasible time slots within working hours, scores them
against historical meeting outcomes and participant availability, and
either books the best slot automatically or suggests the top candidates
for manual selection.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := observability.NewRequestContext(cmd.Context(), "")
		ctx = context.WithValue(ctx, commandTimingKey{}, commandTiming{startedAt: time.Now()})
		cmd.SetContext(ctx)
		logger.InfoContext(ctx, "command start", "command", cmd.CommandPath())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		timing, ok := ctx.Value(commandTimingKey{}).(commandTiming)
		if !ok {
			return
		}
		logger.InfoContext(ctx, "command end",
			"command", cmd.CommandPath(),
			"duration_ms", time.Since(timing.startedAt).Milliseconds(),
		)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetLogger sets the logger used by all commands.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Root returns the root command so subcommand packages can attach to it.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
