package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/render"
	rendertemplate "github.com/goliatone/go-fielderrors/pkg/render/template"
	"github.com/goliatone/go-fielderrors/pkg/render/template/gotemplate"
)

const (
	pageTemplate  = "templates/page.tmpl"
	fieldTemplate = "templates/field.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/page.tmpl and templates/field.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces the fixture page as HTML. Every active indicator becomes
// a span.fe-errorindicator next to the widget caption.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("vanilla renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}

	mapping := render.CollectErrors(page)

	columns := make([]map[string]any, 0, len(page.Columns))
	for _, column := range page.Columns {
		var markup strings.Builder
		for _, field := range column.Fields {
			html, err := r.renderField(field)
			if err != nil {
				return nil, err
			}
			markup.WriteString(html)
		}
		columns = append(columns, map[string]any{
			"name": column.Name,
			"html": markup.String(),
		})
	}

	data := map[string]any{
		"page": map[string]any{
			"id":    page.ID,
			"title": page.Title,
		},
		"columns":      columns,
		"page_errors":  mapping.Page,
		"active_count": fmt.Sprint(mapping.ActiveCount()),
		"field_count":  fmt.Sprint(len(page.Fields())),
		"standalone":   opts.Standalone,
	}

	if opts.Theme != nil {
		data["theme_name"] = opts.Theme.Theme
		data["theme_variant"] = opts.Theme.Variant
		data["theme_style"] = render.CSSVarsStyle(opts.Theme)
	}
	if opts.Standalone {
		stylesheet := opts.Stylesheet
		if stylesheet == "" && opts.Theme != nil && opts.Theme.AssetURL != nil {
			stylesheet = opts.Theme.AssetURL("stylesheet")
		}
		if stylesheet != "" {
			data["stylesheet"] = stylesheet
		} else {
			data["inline_css"] = defaultStylesheet()
		}
	}

	result, err := r.templates.RenderTemplate(pageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderField(field model.Field) (string, error) {
	view := map[string]any{
		"field":      field,
		"kind_class": kindClass(field.Kind),
		"message":    plainMessage(field.Error.Message),
		"text":       firstValue(field.Value),
	}

	if field.Kind.IsSelection() {
		options := make([]map[string]any, 0, len(field.Options))
		var available, selected []string
		for _, option := range field.Options {
			isSelected := contains(field.Value, option)
			options = append(options, map[string]any{"label": option, "selected": isSelected})
			if isSelected {
				selected = append(selected, option)
			} else {
				available = append(available, option)
			}
		}
		view["options"] = options
		view["available"] = available
		view["selected"] = selected
		view["size"] = fmt.Sprint(len(field.Options))
	}
	if field.Rich {
		view["rich_html"] = sanitizeRichText(firstValue(field.Value))
	}
	if field.Rows > 0 {
		view["rows"] = fmt.Sprint(field.Rows)
	}

	html, err := r.templates.RenderTemplate(fieldTemplate, view)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %q: %w", field.ID, err)
	}
	return html, nil
}
