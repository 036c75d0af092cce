package fixture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-fielderrors/pkg/layout"
	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/widgets"
)

// ErrNotOnPage is returned when changing the value of a kind the page does
// not hold.
var ErrNotOnPage = errors.New("fixture: widget not on page")

// Skipped records a widget kind left off the page.
type Skipped struct {
	Kind model.Kind
	Err  error
}

// Page is a built fixture: the live widget tree plus construction results.
type Page struct {
	ID        string
	Title     string
	Root      *layout.Container
	Selection *layout.Container
	Text      *layout.Container
	Skipped   []Skipped
}

// Columns returns the two page columns in order.
func (p *Page) Columns() []*layout.Container {
	return []*layout.Container{p.Selection, p.Text}
}

// Components returns every widget in render order.
func (p *Page) Components() []widgets.Component {
	var out []widgets.Component
	p.Root.Walk(func(c widgets.Component) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Field returns the first widget of the given kind.
func (p *Page) Field(kind model.Kind) (widgets.Component, bool) {
	var found widgets.Component
	p.Root.Walk(func(c widgets.Component) bool {
		if c.Kind() == kind {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

// SkippedKinds lists the kinds that could not be constructed.
func (p *Page) SkippedKinds() []model.Kind {
	if len(p.Skipped) == 0 {
		return nil
	}
	out := make([]model.Kind, 0, len(p.Skipped))
	for _, skipped := range p.Skipped {
		out = append(out, skipped.Kind)
	}
	return out
}

// SetValues changes the value of the widget of the given kind. Selection
// widgets take the labels as their selection; text widgets take the labels
// joined by newlines.
func (p *Page) SetValues(kind model.Kind, values ...string) error {
	component, ok := p.Field(kind)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotOnPage, kind)
	}
	switch typed := component.(type) {
	case widgets.Selectable:
		if err := typed.SetSelection(values...); err != nil {
			return fmt.Errorf("fixture: set %s selection: %w", kind, err)
		}
	case *widgets.TextInput:
		typed.SetValue(strings.Join(values, "\n"))
	default:
		return fmt.Errorf("fixture: %s does not accept values", kind)
	}
	return nil
}

// IndicatorsActive reports whether every widget shows an active error
// indicator, the state the fixture exists to demonstrate.
func (p *Page) IndicatorsActive() bool {
	for _, component := range p.Components() {
		if !component.ErrorIndicator().Active {
			return false
		}
	}
	return true
}

// Snapshot flattens the page for renderers.
func (p *Page) Snapshot() model.Page {
	out := model.Page{ID: p.ID, Title: p.Title}
	for _, column := range p.Columns() {
		snap := model.Column{Name: column.Name(), Fields: []model.Field{}}
		for _, component := range column.Components() {
			snap.Fields = append(snap.Fields, component.Snapshot())
		}
		out.Columns = append(out.Columns, snap)
	}
	for _, skipped := range p.Skipped {
		reason := ""
		if skipped.Err != nil {
			reason = skipped.Err.Error()
		}
		out.Skipped = append(out.Skipped, model.Skipped{Kind: skipped.Kind, Reason: reason})
	}
	return out
}
