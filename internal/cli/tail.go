package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/ducktail/internal/app"
	"github.com/five82/ducktail/internal/classify"
	"github.com/five82/ducktail/internal/engine"
	"github.com/five82/ducktail/internal/logtail"
	"github.com/five82/ducktail/internal/prefs"
	"github.com/five82/ducktail/internal/ui"
)

func newTailCommand(flags *globalFlags) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print the most recent log lines, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.Settings(flags.options())
			if err != nil {
				return err
			}
			if lines <= 0 {
				lines = cfg.TailLines
			}
			return printTail(cmd.OutOrStdout(), cfg.LogPath, lines)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "number of lines to print (default: tail_lines from config)")
	return cmd
}

// printTail writes the last maxLines lines of path, classified and newest
// first. Styling is applied only when w is a terminal; escape sequences and
// control characters never reach w either way.
func printTail(w io.Writer, path string, maxLines int) error {
	raw, err := logtail.TailText(path, maxLines)
	if err != nil {
		return err
	}
	if raw == "" {
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			_, err = fmt.Fprintln(w, engine.PlaceholderMissing)
			return err
		}
		_, err = fmt.Fprintln(w, engine.PlaceholderEmpty)
		return err
	}

	styled := isTerminal(w)
	var styles ui.Styles
	if styled {
		styles = ui.GetTheme(prefs.Load("").Theme).Styles()
	}

	for _, line := range classify.Classify(raw) {
		text := ui.SanitizeText(line.Text)
		if styled {
			text = ui.RenderMarkup(line.Markup, styles)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
