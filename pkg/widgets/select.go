package widgets

import (
	"fmt"

	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/validation"
)

// Select is an option-backed widget. ComboBox, ListSelect and NativeSelect
// hold a single label by default; TwinColSelect always holds a set.
type Select struct {
	base
	options  []string
	selected []string
	multi    bool
}

var _ Selectable = (*Select)(nil)

// NewComboBox builds a single-choice combo box.
func NewComboBox(caption string) *Select {
	return &Select{base: newBase(model.KindComboBox, caption)}
}

// NewListSelect builds a list select, single-select until SetMultiSelect.
func NewListSelect(caption string) *Select {
	return &Select{base: newBase(model.KindListSelect, caption)}
}

// NewNativeSelect builds a browser native select.
func NewNativeSelect(caption string) *Select {
	return &Select{base: newBase(model.KindNativeSelect, caption)}
}

// NewTwinColSelect builds a dual list select whose value is always a set.
func NewTwinColSelect(caption string) *Select {
	return &Select{base: newBase(model.KindTwinColSelect, caption), multi: true}
}

// AddOption appends label to the option list. Duplicate labels are ignored
// and reported with false.
func (s *Select) AddOption(label string) bool {
	if s.hasOption(label) {
		return false
	}
	s.options = append(s.options, label)
	return true
}

// Options returns the option labels in insertion order.
func (s *Select) Options() []string {
	return append([]string(nil), s.options...)
}

// SetMultiSelect toggles set semantics. TwinColSelect ignores false.
func (s *Select) SetMultiSelect(multi bool) {
	if s.kind == model.KindTwinColSelect {
		return
	}
	s.multi = multi
	if !multi && len(s.selected) > 1 {
		s.selected = s.selected[:1]
	}
}

// MultiSelect reports whether the value is a set.
func (s *Select) MultiSelect() bool {
	return s.multi
}

// SetValue selects a single label. On multi-select widgets the value becomes
// the singleton set {label}.
func (s *Select) SetValue(label string) error {
	return s.SetSelection(label)
}

// SetSelection replaces the current selection. Passing no labels clears it.
func (s *Select) SetSelection(labels ...string) error {
	if !s.multi && len(labels) > 1 {
		return fmt.Errorf("%w: %s got %d labels", ErrSingleSelect, s.kind, len(labels))
	}
	next := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if !s.hasOption(label) {
			return fmt.Errorf("%w: %q on %s", ErrUnknownOption, label, s.kind)
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		next = append(next, label)
	}
	s.selected = next
	return nil
}

// Value returns the current value: a label or nil for single-select widgets,
// a (possibly empty) label set for multi-select ones.
func (s *Select) Value() any {
	if s.multi {
		return append([]string{}, s.selected...)
	}
	if len(s.selected) == 0 {
		return nil
	}
	return s.selected[0]
}

// Validate runs the attached validators against the current value.
func (s *Select) Validate() error {
	return validation.Run(s.Value(), s.validators...)
}

// ErrorIndicator resolves the indicator from the component error or the
// validators.
func (s *Select) ErrorIndicator() model.ErrorIndicator {
	return s.indicator(s.Value())
}

// Snapshot flattens the widget for renderers.
func (s *Select) Snapshot() model.Field {
	field := s.snapshot()
	field.Options = s.Options()
	if len(s.selected) > 0 {
		field.Value = append([]string(nil), s.selected...)
	}
	field.Multi = s.multi
	field.Error = s.ErrorIndicator()
	return field
}

func (s *Select) hasOption(label string) bool {
	for _, option := range s.options {
		if option == label {
			return true
		}
	}
	return false
}
