package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-fielderrors/pkg/fixture"
	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/render"
	"github.com/goliatone/go-fielderrors/pkg/widgets"
)

type captureRenderer struct {
	pages []model.Page
	opts  []render.RenderOptions
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/x-capture" }

func (c *captureRenderer) Render(_ context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	c.pages = append(c.pages, page)
	c.opts = append(c.opts, opts)
	return []byte(page.ID), nil
}

type stubThemeSelector struct {
	selection *theme.Selection
	calls     [][2]string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return s.selection, nil
}

func newCapture(t *testing.T, options ...Option) (*Orchestrator, *captureRenderer) {
	t.Helper()
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	base := []Option{
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithLogger(fixture.DiscardLogger()),
		WithFixtureOptions(fixture.WithIDGenerator(func() string { return "page-1" })),
	}
	return New(append(base, options...)...), renderer
}

func TestOrchestrator_BuildsFreshPagePerRequest(t *testing.T) {
	orch, renderer := newCapture(t)

	for i := 0; i < 2; i++ {
		result, err := orch.Execute(context.Background(), Request{})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if string(result.Body) != "page-1" || result.ContentType != "text/x-capture" || result.Renderer != "capture" {
			t.Fatalf("unexpected result: %+v", result)
		}
	}

	if diff := cmp.Diff(renderer.pages[0], renderer.pages[1]); diff != "" {
		t.Fatalf("pages should be identical (-want +got):\n%s", diff)
	}
	if got := render.CollectErrors(renderer.pages[0]).ActiveCount(); got != 8 {
		t.Fatalf("expected 8 active indicators, got %d", got)
	}
}

func TestOrchestrator_AppliesValues(t *testing.T) {
	orch, renderer := newCapture(t)

	_, err := orch.Generate(context.Background(), Request{
		Values: map[model.Kind][]string{
			model.KindTwinColSelect: {"ok"},
			model.KindComboBox:      {"ok"},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	page := renderer.pages[0]
	for _, kind := range []model.Kind{model.KindTwinColSelect, model.KindComboBox} {
		field, _ := page.FieldByKind(kind)
		if field.Error.Active {
			t.Fatalf("%s indicator should be cleared", kind)
		}
	}
	if got := render.CollectErrors(page).ActiveCount(); got != 6 {
		t.Fatalf("expected 6 active indicators, got %d", got)
	}

	_, err = orch.Generate(context.Background(), Request{
		Values: map[model.Kind][]string{model.KindNativeSelect: {"maybe"}},
	})
	if !errors.Is(err, widgets.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
}

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens:  map[string]string{"brand": "#123456"},
		},
	}}
	orch, renderer := newCapture(t, WithThemeSelector(selector))

	if _, err := orch.Generate(context.Background(), Request{ThemeName: "acme", ThemeVariant: "dark"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if diff := cmp.Diff([][2]string{{"acme", "dark"}}, selector.calls); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	cfg := renderer.opts[0].Theme
	if cfg == nil || cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme config: %+v", cfg)
	}
	if cfg.CSSVars["--brand"] != "#123456" {
		t.Fatalf("expected brand css var, got %v", cfg.CSSVars)
	}

	explicit := &theme.RendererConfig{Theme: "explicit"}
	if _, err := orch.Generate(context.Background(), Request{RenderOptions: render.RenderOptions{Theme: explicit}}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(selector.calls) != 1 || renderer.opts[1].Theme != explicit {
		t.Fatalf("explicit theme should bypass the selector")
	}
}

func TestOrchestrator_RendererResolution(t *testing.T) {
	orch, _ := newCapture(t)

	if _, err := orch.Renderer("missing"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}

	fallback, _ := newCapture(t, WithDefaultRenderer("missing"))
	renderer, err := fallback.Renderer("")
	if err != nil || renderer.Name() != "capture" {
		t.Fatalf("expected fallback to first registered renderer, got %v (%v)", renderer, err)
	}

	empty := New(WithRegistry(render.NewRegistry()), WithLogger(fixture.DiscardLogger()))
	if _, err := empty.Renderer(""); err == nil {
		t.Fatalf("expected error with no renderers")
	}
}

func TestOrchestrator_DefaultRegistry(t *testing.T) {
	orch := New(
		WithLogger(fixture.DiscardLogger()),
		WithFixtureOptions(fixture.WithLogger(fixture.DiscardLogger())),
	)

	if diff := cmp.Diff([]string{"json", "tui", "vanilla", "yaml"}, orch.Registry().List()); diff != "" {
		t.Fatalf("registry mismatch (-want +got):\n%s", diff)
	}

	result, err := orch.Execute(context.Background(), Request{})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Renderer != "vanilla" || strings.Count(string(result.Body), `class="fe-errorindicator"`) != 8 {
		t.Fatalf("unexpected default render: %s", result.Body)
	}
}

func TestOrchestrator_Preconditions(t *testing.T) {
	orch, _ := newCapture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := orch.Render(context.Background(), nil, Request{}); err == nil {
		t.Fatalf("expected error for nil page")
	}
}
