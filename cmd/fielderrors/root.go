package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "fielderrors",
		Short: "Field error indication fixture",
		Long: `fielderrors builds a page of form fields whose validators are forced to
fail, so a tester can check that every field shows its error indicator.

Examples:
  fielderrors render --renderer tui
  fielderrors render --set TwinColSelect=ok --output page.html
  fielderrors serve --addr :8080
  fielderrors inspect`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Context())
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./fielderrors.yaml or $HOME/.config/fielderrors/fielderrors.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newInspectCmd(a))
	return root
}
