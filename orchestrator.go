// Package fielderrors is the convenience entry point to the field error
// indication fixture: build the page, render it, or reach the orchestrator
// for finer control.
package fielderrors

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-fielderrors/pkg/fixture"
	"github.com/goliatone/go-fielderrors/pkg/orchestrator"
	"github.com/goliatone/go-fielderrors/pkg/render"
)

// RenderOptions aliases render.RenderOptions so callers can theme or wrap the
// page without importing the render package.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Page aliases the built fixture page.
type Page = fixture.Page

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Build constructs one fixture page with the given builder options.
func Build(ctx context.Context, options ...fixture.Option) (*Page, error) {
	return fixture.New(options...).Build(ctx)
}

// GenerateHTML builds a fresh page and renders it as a standalone HTML
// document with the stylesheet inlined. It is the simplest entry point for
// callers that just want to look at the indicators.
func GenerateHTML(ctx context.Context, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Renderer:      "vanilla",
		RenderOptions: render.RenderOptions{Standalone: true},
	})
}

// WithFixtureOptions forwards builder options through the orchestrator.
func WithFixtureOptions(options ...fixture.Option) orchestrator.Option {
	return orchestrator.WithFixtureOptions(options...)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// DefaultThemeSelector returns a selector holding the built-in theme.
func DefaultThemeSelector() (*render.ManifestSelector, error) {
	return render.NewManifestSelector(render.DefaultThemeName, render.DefaultThemeVariant, render.DefaultManifest())
}
