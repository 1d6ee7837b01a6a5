package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/five82/ducktail/internal/app"
)

func newServeCommand(flags *globalFlags) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard without the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := flags.options()
			opts.Listen = listen
			return app.Serve(cmd.Context(), opts, func(addr string) {
				pterm.Success.Printfln("Dashboard listening on http://%s", addr)
				pterm.Info.Println("Press Ctrl+C to stop.")
			})
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on (default: 127.0.0.1:7488)")
	return cmd
}
