package model

// Kind identifies a widget type. The string value doubles as the widget
// caption on the fixture page.
type Kind string

const (
	KindComboBox      Kind = "ComboBox"
	KindListSelect    Kind = "ListSelect"
	KindNativeSelect  Kind = "NativeSelect"
	KindTwinColSelect Kind = "TwinColSelect"
	KindTextField     Kind = "TextField"
	KindTextArea      Kind = "TextArea"
	KindRichTextArea  Kind = "RichTextArea"
	KindPasswordField Kind = "PasswordField"
)

// SelectionKinds lists the option-backed widget kinds in page order.
func SelectionKinds() []Kind {
	return []Kind{KindComboBox, KindListSelect, KindNativeSelect, KindTwinColSelect}
}

// TextKinds lists the text-like widget kinds in page order.
func TextKinds() []Kind {
	return []Kind{KindTextField, KindTextArea, KindRichTextArea, KindPasswordField}
}

// Kinds returns every known widget kind.
func Kinds() []Kind {
	return append(SelectionKinds(), TextKinds()...)
}

// IsSelection reports whether the kind holds values chosen from an option list.
func (k Kind) IsSelection() bool {
	switch k {
	case KindComboBox, KindListSelect, KindNativeSelect, KindTwinColSelect:
		return true
	default:
		return false
	}
}

// Known reports whether k is one of the built-in kinds.
func (k Kind) Known() bool {
	for _, candidate := range Kinds() {
		if candidate == k {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// ErrorIndicator is the visible error marker of a widget. Active is true when
// validation fails or a component error was set directly.
type ErrorIndicator struct {
	Active  bool   `json:"active" yaml:"active"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Field is the rendered state of a single widget.
type Field struct {
	ID         string         `json:"id" yaml:"id"`
	Kind       Kind           `json:"kind" yaml:"kind"`
	Caption    string         `json:"caption" yaml:"caption"`
	Options    []string       `json:"options,omitempty" yaml:"options,omitempty"`
	Value      []string       `json:"value,omitempty" yaml:"value,omitempty"`
	Multi      bool           `json:"multi,omitempty" yaml:"multi,omitempty"`
	Rows       int            `json:"rows,omitempty" yaml:"rows,omitempty"`
	Secret     bool           `json:"secret,omitempty" yaml:"secret,omitempty"`
	Rich       bool           `json:"rich,omitempty" yaml:"rich,omitempty"`
	Validators []string       `json:"validators,omitempty" yaml:"validators,omitempty"`
	Error      ErrorIndicator `json:"error" yaml:"error"`
}

// Column is a vertical stack of fields.
type Column struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Skipped records a widget kind that could not be constructed.
type Skipped struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Reason string `json:"reason" yaml:"reason"`
}

// Page is the top-level snapshot renderers consume.
type Page struct {
	ID      string    `json:"id" yaml:"id"`
	Title   string    `json:"title" yaml:"title"`
	Columns []Column  `json:"columns" yaml:"columns"`
	Skipped []Skipped `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Fields flattens the page columns in render order.
func (p Page) Fields() []Field {
	var out []Field
	for _, column := range p.Columns {
		out = append(out, column.Fields...)
	}
	return out
}

// FieldByKind returns the first field of the given kind.
func (p Page) FieldByKind(kind Kind) (Field, bool) {
	for _, field := range p.Fields() {
		if field.Kind == kind {
			return field, true
		}
	}
	return Field{}, false
}
