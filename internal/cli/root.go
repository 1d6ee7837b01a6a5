// Package cli defines the ducktail command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/five82/ducktail/internal/app"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logPath    string
	pollEvery  int
	debugLog   string
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		LogPath:    g.logPath,
		PollEvery:  g.pollEvery,
		DebugLog:   g.debugLog,
	}
}

// NewRootCommand builds the ducktail command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}
	var web string

	root := &cobra.Command{
		Use:   "ducktail",
		Short: "Live view of the Duck log",
		Long: `ducktail tails /var/log/duck/duck.log, highlights severities and
addresses, and filters entries as you type. Newest entries are shown first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := flags.options()
			opts.Listen = web
			return app.Run(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default: ~/.config/ducktail/config.toml)")
	pf.StringVar(&flags.logPath, "log", "", "log file to tail (default: /var/log/duck/duck.log)")
	pf.IntVar(&flags.pollEvery, "poll", 0, "refresh interval in seconds (default: 5)")
	pf.StringVar(&flags.debugLog, "debug-log", "", "write diagnostic output to this file while the TUI runs")

	root.Flags().StringVar(&web, "web", "", "also serve the web dashboard on this address")

	root.AddCommand(
		newServeCommand(flags),
		newClearCommand(flags),
		newTailCommand(flags),
	)
	return root
}

// Execute runs the command line with ctx.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
