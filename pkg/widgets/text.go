package widgets

import (
	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/validation"
)

const defaultTextAreaRows = 5

// TextInput covers the text-like widgets: single line, multi line, rich text
// and password inputs.
type TextInput struct {
	base
	value  string
	rows   int
	secret bool
	rich   bool
}

var _ Component = (*TextInput)(nil)

// NewTextField builds a single line text input.
func NewTextField() *TextInput {
	return &TextInput{base: newBase(model.KindTextField, "")}
}

// NewTextArea builds a multi line text input.
func NewTextArea() *TextInput {
	return &TextInput{base: newBase(model.KindTextArea, ""), rows: defaultTextAreaRows}
}

// NewRichTextArea builds a text area holding HTML markup.
func NewRichTextArea() *TextInput {
	return &TextInput{base: newBase(model.KindRichTextArea, ""), rows: defaultTextAreaRows, rich: true}
}

// NewPasswordField builds a masked single line input.
func NewPasswordField() *TextInput {
	return &TextInput{base: newBase(model.KindPasswordField, ""), secret: true}
}

// SetValue replaces the text content.
func (t *TextInput) SetValue(value string) {
	t.value = value
}

// Value returns the text content.
func (t *TextInput) Value() string {
	return t.value
}

// Rows reports the visible line count, zero for single line inputs.
func (t *TextInput) Rows() int {
	return t.rows
}

// Secret reports whether the value is masked.
func (t *TextInput) Secret() bool {
	return t.secret
}

// Rich reports whether the value is HTML markup.
func (t *TextInput) Rich() bool {
	return t.rich
}

// Validate runs the attached validators against the text content.
func (t *TextInput) Validate() error {
	return validation.Run(t.value, t.validators...)
}

// ErrorIndicator resolves the indicator from the component error or the
// validators.
func (t *TextInput) ErrorIndicator() model.ErrorIndicator {
	return t.indicator(t.value)
}

// Snapshot flattens the widget for renderers. Password values never leave the
// widget.
func (t *TextInput) Snapshot() model.Field {
	field := t.snapshot()
	if t.value != "" && !t.secret {
		field.Value = []string{t.value}
	}
	field.Rows = t.rows
	field.Secret = t.secret
	field.Rich = t.rich
	field.Error = t.ErrorIndicator()
	return field
}
