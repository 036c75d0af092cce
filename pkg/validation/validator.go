package validation

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// ErrInvalidValue matches every failure returned by a Validator.
var ErrInvalidValue = errors.New("validation: invalid value")

// InvalidValueError reports a failed validation. Message is the text a widget
// shows in its error indicator.
type InvalidValueError struct {
	Validator string
	Message   string
}

func (e *InvalidValueError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("validation: %s: %s", e.Validator, e.Message)
}

// Is allows errors.Is(err, ErrInvalidValue).
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// Validator checks a widget value. The set of validators is closed: only the
// variants declared in this package satisfy it.
type Validator interface {
	Name() string
	Validate(value any) error
	sealed()
}

// StringLength fails when the value is not a string whose rune count lies in
// [Min, Max]. A negative Max disables the upper bound. Selection values are
// checked element by element.
type StringLength struct {
	Message  string
	Min      int
	Max      int
	AllowNil bool
}

var _ Validator = StringLength{}

// NewStringLength builds a length-bound validator.
func NewStringLength(message string, min, max int, allowNil bool) StringLength {
	return StringLength{Message: message, Min: min, Max: max, AllowNil: allowNil}
}

func (StringLength) sealed() {}

// Name reports the validator identifier.
func (v StringLength) Name() string {
	return "stringLength"
}

// Validate implements Validator.
func (v StringLength) Validate(value any) error {
	switch typed := value.(type) {
	case nil:
		if v.AllowNil {
			return nil
		}
		return v.fail()
	case string:
		return v.check(typed)
	case []string:
		if len(typed) == 0 {
			if v.AllowNil {
				return nil
			}
			return v.fail()
		}
		for _, item := range typed {
			if err := v.check(item); err != nil {
				return err
			}
		}
		return nil
	default:
		return v.check(fmt.Sprint(typed))
	}
}

func (v StringLength) check(value string) error {
	length := utf8.RuneCountInString(value)
	if length < v.Min {
		return v.fail()
	}
	if v.Max >= 0 && length > v.Max {
		return v.fail()
	}
	return nil
}

func (v StringLength) fail() error {
	return &InvalidValueError{Validator: v.Name(), Message: v.Message}
}

// ExactSet accepts only a selection set equal to Want. Order and duplicates in
// the value are ignored; scalar values always fail.
type ExactSet struct {
	Message string
	Want    []string
}

var _ Validator = ExactSet{}

// NewExactSet builds a validator accepting exactly the given selection.
func NewExactSet(message string, want ...string) ExactSet {
	return ExactSet{Message: message, Want: append([]string(nil), want...)}
}

func (ExactSet) sealed() {}

// Name reports the validator identifier.
func (v ExactSet) Name() string {
	return "exactSet"
}

// Validate implements Validator.
func (v ExactSet) Validate(value any) error {
	selected, ok := value.([]string)
	if !ok {
		return v.fail()
	}
	if !equalSets(selected, v.Want) {
		return v.fail()
	}
	return nil
}

func (v ExactSet) fail() error {
	return &InvalidValueError{Validator: v.Name(), Message: v.Message}
}

func equalSets(a, b []string) bool {
	left, right := uniqueSorted(a), uniqueSorted(b)
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

// Run validates value against each validator in order and returns the first
// failure.
func Run(value any, validators ...Validator) error {
	for _, validator := range validators {
		if validator == nil {
			continue
		}
		if err := validator.Validate(value); err != nil {
			return err
		}
	}
	return nil
}

// Message extracts the indicator text from a validation failure.
func Message(err error) string {
	var invalid *InvalidValueError
	if errors.As(err, &invalid) {
		return invalid.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
