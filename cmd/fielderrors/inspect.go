package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fielderrors/pkg/orchestrator"
	"github.com/goliatone/go-fielderrors/pkg/renderers/tui"
)

func newInspectCmd(a *app) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Change widget values interactively and watch the indicators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			page, err := orch.Build(cmd.Context(), orchestrator.Request{})
			if err != nil {
				return err
			}

			options := []tui.Option{tui.WithOutput(cmd.OutOrStdout())}
			if a.driver != nil {
				options = append(options, tui.WithPromptDriver(a.driver))
			}
			if plain {
				options = append(options, tui.WithStyles(tui.PlainStyles()))
			}

			err = tui.NewInspector(options...).Run(cmd.Context(), page)
			if errors.Is(err, tui.ErrAborted) {
				a.logger.Info("inspection aborted")
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	return cmd
}
