package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fielderrors/pkg/orchestrator"
	"github.com/goliatone/go-fielderrors/pkg/render"
)

type renderFlags struct {
	renderer   string
	output     string
	fragment   bool
	stylesheet string
	theme      string
	variant    string
	values     []string
}

func newRenderCmd(a *app) *cobra.Command {
	flags := renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the fixture page once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, a, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.renderer, "renderer", "r", "vanilla", "renderer: vanilla, tui, json or yaml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&flags.fragment, "fragment", false, "emit the HTML page fragment without the document wrapper")
	cmd.Flags().StringVar(&flags.stylesheet, "stylesheet", "", "stylesheet URL linked from standalone HTML (inlined when empty)")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "theme name (default from config)")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "theme variant (default from config)")
	cmd.Flags().StringArrayVar(&flags.values, "set", nil, "override a widget value, e.g. --set TwinColSelect=ok")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, flags renderFlags) error {
	values, err := parseValues(flags.values)
	if err != nil {
		return err
	}
	orch, err := a.orchestrator()
	if err != nil {
		return err
	}

	themeName := flags.theme
	if themeName == "" {
		themeName = a.cfg.Theme.Name
	}
	variant := flags.variant
	if variant == "" {
		variant = a.cfg.Theme.Variant
	}

	result, err := orch.Execute(cmd.Context(), orchestrator.Request{
		Renderer:     flags.renderer,
		Values:       values,
		ThemeName:    themeName,
		ThemeVariant: variant,
		RenderOptions: render.RenderOptions{
			Standalone: !flags.fragment,
			Stylesheet: flags.stylesheet,
		},
	})
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := cmd.OutOrStdout().Write(result.Body)
		return err
	}
	if err := os.WriteFile(flags.output, result.Body, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Info("page written",
		"path", flags.output,
		"renderer", result.Renderer,
		"active", render.CollectErrors(result.Page).ActiveCount(),
	)
	return nil
}
