package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-fielderrors/pkg/fixture"
	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/render"
	"github.com/goliatone/go-fielderrors/pkg/renderers/snapshot"
	"github.com/goliatone/go-fielderrors/pkg/renderers/tui"
	"github.com/goliatone/go-fielderrors/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithFixtureOptions forwards options to every fixture builder the
// orchestrator creates.
func WithFixtureOptions(options ...fixture.Option) Option {
	return func(o *Orchestrator) {
		o.fixtureOptions = append(o.fixtureOptions, options...)
	}
}

// WithRegistry injects the renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithDefaultRenderer names the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.defaultRenderer = name
		}
	}
}

// WithThemeSelector resolves the request theme before rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithLogger overrides the pipeline logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator builds a fresh fixture page for every request and renders it.
// It applies defaults (all built-in renderers, vanilla by default) while
// staying open to injection.
type Orchestrator struct {
	fixtureOptions  []fixture.Option
	registry        *render.Registry
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	logger          *log.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render of the fixture page.
type Request struct {
	// Renderer names the renderer to use. Empty falls back to the default.
	Renderer string

	// Values overrides widget values after the build, keyed by kind. Used to
	// watch an indicator clear, e.g. TwinColSelect → {"ok"}.
	Values map[model.Kind][]string

	// ThemeName and ThemeVariant are resolved through the theme selector when
	// RenderOptions.Theme is unset.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Result carries the rendered bytes with the details a host needs to serve
// them.
type Result struct {
	Body        []byte
	ContentType string
	Renderer    string
	Page        model.Page
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Build creates a page and applies the request values.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*fixture.Page, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	page, err := fixture.New(o.builderOptions()...).Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build page: %w", err)
	}
	if err := applyValues(page, req.Values); err != nil {
		return nil, err
	}
	return page, nil
}

// Generate runs the full pipeline and returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Body, nil
}

// Execute runs the full pipeline and returns the rendered output with its
// metadata.
func (o *Orchestrator) Execute(ctx context.Context, req Request) (Result, error) {
	page, err := o.Build(ctx, req)
	if err != nil {
		return Result{}, err
	}
	return o.Render(ctx, page, req)
}

// Render renders an already built page, e.g. one changed by the inspector.
func (o *Orchestrator) Render(ctx context.Context, page *fixture.Page, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if page == nil {
		return Result{}, errors.New("orchestrator: page is required")
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil && o.themeSelector != nil {
		cfg, err := render.ResolveTheme(o.themeSelector, req.ThemeName, req.ThemeVariant)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: resolve theme: %w", err)
		}
		opts.Theme = cfg
	}

	snap := page.Snapshot()
	output, err := renderer.Render(ctx, snap, opts)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.Debug("page rendered",
		"renderer", renderer.Name(),
		"page", snap.ID,
		"active", render.CollectErrors(snap).ActiveCount(),
		"fields", len(snap.Fields()),
	)

	return Result{
		Body:        output,
		ContentType: renderer.ContentType(),
		Renderer:    renderer.Name(),
		Page:        snap,
	}, nil
}

// Renderer resolves a renderer by name, falling back to the default and then
// to the first registered renderer when name is empty.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) builderOptions() []fixture.Option {
	opts := []fixture.Option{fixture.WithLogger(o.logger)}
	return append(opts, o.fixtureOptions...)
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "orchestrator"})
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = err
			o.registry = render.NewRegistry()
		} else {
			o.registry = registry
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// DefaultRegistry registers every built-in renderer: vanilla HTML, tui text,
// json and yaml snapshots.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	for _, renderer := range []render.Renderer{
		html,
		tui.New(tui.WithStyles(tui.PlainStyles())),
		snapshot.NewJSON(),
		snapshot.NewYAML(),
	} {
		if err := registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("orchestrator: default registry: %w", err)
		}
	}
	return registry, nil
}

// applyValues sets overrides in a stable order so errors are deterministic.
func applyValues(page *fixture.Page, values map[model.Kind][]string) error {
	if len(values) == 0 {
		return nil
	}
	kinds := make([]model.Kind, 0, len(values))
	for kind := range values {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		if err := page.SetValues(kind, values[kind]...); err != nil {
			return fmt.Errorf("orchestrator: apply %s value: %w", kind, err)
		}
	}
	return nil
}
