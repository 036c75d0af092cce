package widgets

import (
	"strings"

	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/validation"
)

// Component is the capability every fixture widget exposes: a caption, a
// directly settable component error and validator driven error indication.
type Component interface {
	ID() string
	SetID(id string)
	Kind() model.Kind
	Caption() string
	SetCaption(caption string)
	AddValidator(v validation.Validator)
	SetComponentError(message string)
	ClearComponentError()
	Validate() error
	ErrorIndicator() model.ErrorIndicator
	Snapshot() model.Field
}

// Selectable is implemented by option-backed widgets.
type Selectable interface {
	Component
	AddOption(label string) bool
	Options() []string
	MultiSelect() bool
	SetValue(label string) error
	SetSelection(labels ...string) error
}

// base carries the state shared by every widget.
type base struct {
	id             string
	kind           model.Kind
	caption        string
	componentError *string
	validators     []validation.Validator
}

func newBase(kind model.Kind, caption string) base {
	return base{kind: kind, caption: caption}
}

func (b *base) ID() string {
	return b.id
}

func (b *base) SetID(id string) {
	b.id = strings.TrimSpace(id)
}

func (b *base) Kind() model.Kind {
	return b.kind
}

func (b *base) Caption() string {
	return b.caption
}

func (b *base) SetCaption(caption string) {
	b.caption = caption
}

func (b *base) AddValidator(v validation.Validator) {
	if v == nil {
		return
	}
	b.validators = append(b.validators, v)
}

// SetComponentError forces the error indicator active regardless of
// validation.
func (b *base) SetComponentError(message string) {
	b.componentError = &message
}

func (b *base) ClearComponentError() {
	b.componentError = nil
}

func (b *base) validatorNames() []string {
	if len(b.validators) == 0 {
		return nil
	}
	names := make([]string, 0, len(b.validators))
	for _, v := range b.validators {
		names = append(names, v.Name())
	}
	return names
}

// indicator resolves the error indicator for value. A component error wins
// over validation output.
func (b *base) indicator(value any) model.ErrorIndicator {
	if b.componentError != nil {
		return model.ErrorIndicator{Active: true, Message: *b.componentError}
	}
	if err := validation.Run(value, b.validators...); err != nil {
		return model.ErrorIndicator{Active: true, Message: validation.Message(err)}
	}
	return model.ErrorIndicator{}
}

func (b *base) snapshot() model.Field {
	return model.Field{
		ID:         b.id,
		Kind:       b.kind,
		Caption:    b.caption,
		Validators: b.validatorNames(),
	}
}
