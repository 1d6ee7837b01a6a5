package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/ducktail/internal/app"
)

var errNotConfirmed = errors.New("refusing to clear the log without confirmation (use --yes)")

// stdinIsTerminal reports whether the user can answer a prompt.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirmClear asks the user before clearing.
var confirmClear = func(path string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		WithDefaultText(fmt.Sprintf("Really clear %s? This cannot be undone.", path)).
		Show()
}

func newClearCommand(flags *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := flags.options()
			if !yes {
				if !stdinIsTerminal() {
					return errNotConfirmed
				}
				cfg, err := app.Settings(opts)
				if err != nil {
					return err
				}
				ok, err := confirmClear(cfg.LogPath)
				if err != nil {
					return fmt.Errorf("confirm: %w", err)
				}
				if !ok {
					pterm.Info.Println("Log left untouched.")
					return nil
				}
			}

			path, err := app.ClearLog(cmd.Context(), opts)
			if err != nil {
				pterm.Error.Printfln("Failed to clear log file: %v", err)
				return err
			}
			pterm.Success.Printfln("Log file has been cleared. (%s)", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "clear without asking")
	return cmd
}
