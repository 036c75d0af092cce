package fixture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/goliatone/go-fielderrors/pkg/layout"
	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/validation"
	"github.com/goliatone/go-fielderrors/pkg/widgets"
)

const (
	SelectionColumn = "selection"
	TextColumn      = "text"
)

// Builder assembles the field error indication page: a horizontal layout
// with one column of selection widgets whose validators fail and one column
// of text widgets with a forced component error.
type Builder struct {
	config   Config
	registry *widgets.Registry
	logger   *log.Logger
	newID    func() string

	textKinds []model.Kind
}

// New constructs a builder applying the provided options.
func New(options ...Option) *Builder {
	b := &Builder{
		config:   DefaultConfig(),
		registry: widgets.NewRegistry(),
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "fixture",
		}),
		newID: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.textKinds != nil {
		b.config.TextKinds = b.textKinds
	}
	return b
}

// Config returns the effective builder configuration.
func (b *Builder) Config() Config {
	return b.config
}

// Build constructs a fresh page. Widgets whose kind cannot be constructed are
// logged, recorded in Page.Skipped and left out; they never fail the build.
func (b *Builder) Build(ctx context.Context) (*Page, error) {
	if ctx == nil {
		return nil, errors.New("fixture: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fixture: build canceled: %w", err)
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	page := &Page{
		ID:        b.newID(),
		Title:     b.config.Title,
		Root:      layout.NewHorizontal("root"),
		Selection: layout.NewVertical(SelectionColumn),
		Text:      layout.NewVertical(TextColumn),
	}
	page.Root.AddContainer(page.Selection)
	page.Root.AddContainer(page.Text)

	for _, kind := range model.SelectionKinds() {
		component, err := b.selectionWidget(kind)
		if err != nil {
			b.skip(page, kind, err)
			continue
		}
		page.Selection.AddComponent(component)
	}

	for _, kind := range b.config.TextKinds {
		component, err := b.textWidget(kind)
		if err != nil {
			b.skip(page, kind, err)
			continue
		}
		page.Text.AddComponent(component)
	}

	b.logger.Debug("fixture page built",
		"page", page.ID,
		"widgets", len(page.Components()),
		"skipped", len(page.Skipped),
	)
	return page, nil
}

func (b *Builder) selectionWidget(kind model.Kind) (widgets.Component, error) {
	component, err := b.registry.New(kind)
	if err != nil {
		return nil, err
	}
	selectable, ok := component.(widgets.Selectable)
	if !ok {
		return nil, fmt.Errorf("%w: %q does not hold options", widgets.ErrConstruction, kind)
	}

	selectable.SetCaption(kind.String())
	selectable.SetID(ControlID(kind))
	for _, label := range b.config.Options {
		selectable.AddOption(label)
	}

	if kind == model.KindTwinColSelect {
		selectable.AddValidator(validation.NewExactSet(b.config.Message, b.config.AcceptedSet...))
	} else {
		selectable.AddValidator(validation.NewStringLength(b.config.Message, 0, b.config.MaxLength, false))
	}

	if err := selectable.SetValue(b.config.FailingValue); err != nil {
		return nil, fmt.Errorf("fixture: seed %s value: %w", kind, err)
	}
	return selectable, nil
}

func (b *Builder) textWidget(kind model.Kind) (widgets.Component, error) {
	component, err := b.registry.New(kind)
	if err != nil {
		return nil, err
	}
	component.SetCaption(kind.String())
	component.SetID(ControlID(kind))
	component.SetComponentError(b.config.Message)
	return component, nil
}

func (b *Builder) skip(page *Page, kind model.Kind, err error) {
	b.logger.Warn("skipping widget", "kind", kind, "err", err)
	page.Skipped = append(page.Skipped, Skipped{Kind: kind, Err: err})
}

// ControlID derives the DOM identifier for a widget kind, e.g.
// "fe-twin-col-select".
func ControlID(kind model.Kind) string {
	name := strings.TrimSpace(kind.String())
	if name == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("fe-")
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
