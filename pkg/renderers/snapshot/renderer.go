// Package snapshot renders the fixture page as a JSON or YAML document so the
// indicator state can be asserted by tools instead of eyes.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/render"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is the serialized shape: the page plus the collected error
// mapping.
type Document struct {
	Page         model.Page          `json:"page" yaml:"page"`
	Errors       map[string][]string `json:"errors" yaml:"errors"`
	PageErrors   []string            `json:"page_errors,omitempty" yaml:"page_errors,omitempty"`
	ActiveCount  int                 `json:"active_indicators" yaml:"active_indicators"`
	FieldCount   int                 `json:"fields" yaml:"fields"`
	AllIndicated bool                `json:"all_indicated" yaml:"all_indicated"`
}

// Renderer encodes the page in a single format.
type Renderer struct {
	format Format
	indent int
}

var _ render.Renderer = (*Renderer)(nil)

type Option func(*Renderer)

// WithIndent sets the indentation width. Zero produces compact JSON.
func WithIndent(width int) Option {
	return func(r *Renderer) {
		if width >= 0 {
			r.indent = width
		}
	}
}

// New returns a renderer for format.
func New(format Format, options ...Option) (*Renderer, error) {
	switch format {
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("snapshot renderer: unsupported format %q", format)
	}
	r := &Renderer{format: format, indent: 2}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// NewJSON is shorthand for New(FormatJSON).
func NewJSON(options ...Option) *Renderer {
	r, _ := New(FormatJSON, options...)
	return r
}

// NewYAML is shorthand for New(FormatYAML).
func NewYAML(options ...Option) *Renderer {
	r, _ := New(FormatYAML, options...)
	return r
}

func (r *Renderer) Name() string {
	return string(r.format)
}

func (r *Renderer) ContentType() string {
	if r.format == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, page model.Page, _ render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("snapshot renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := NewDocument(page)
	switch r.format {
	case FormatYAML:
		return r.encodeYAML(doc)
	default:
		return r.encodeJSON(doc)
	}
}

// NewDocument derives the serialized document from a page snapshot.
func NewDocument(page model.Page) Document {
	mapping := render.CollectErrors(page)
	errs := mapping.Fields
	if errs == nil {
		errs = map[string][]string{}
	}
	fields := len(page.Fields())
	active := mapping.ActiveCount()
	return Document{
		Page:         page,
		Errors:       errs,
		PageErrors:   mapping.Page,
		ActiveCount:  active,
		FieldCount:   fields,
		AllIndicated: fields > 0 && active == fields,
	}
}

func (r *Renderer) encodeJSON(doc Document) ([]byte, error) {
	var (
		payload []byte
		err     error
	)
	if r.indent > 0 {
		payload, err = json.MarshalIndent(doc, "", fmt.Sprintf("%*s", r.indent, ""))
	} else {
		payload, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot renderer: encode json: %w", err)
	}
	return append(payload, '\n'), nil
}

func (r *Renderer) encodeYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if r.indent > 0 {
		enc.SetIndent(r.indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("snapshot renderer: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("snapshot renderer: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
