package fixture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/validation"
)

const (
	DefaultTitle        = "Field error indication"
	DefaultFailingValue = "error"
	DefaultMessage      = "fail"
	DefaultMaxLength    = 2
)

// Config holds the values the builder seeds widgets with.
type Config struct {
	Title string
	// Options are added to every selection widget in order.
	Options []string
	// FailingValue is selected on every selection widget.
	FailingValue string
	// AcceptedSet is the only selection the twin column validator accepts.
	AcceptedSet []string
	// Message is the indicator text for validators and forced errors.
	Message string
	// MaxLength bounds the length validator; FailingValue must exceed it.
	MaxLength int
	// TextKinds lists the text-like kinds constructed for the second column.
	TextKinds []model.Kind
}

// DefaultConfig returns the stock fixture configuration.
func DefaultConfig() Config {
	return Config{
		Title:        DefaultTitle,
		Options:      []string{"ok", DefaultFailingValue},
		FailingValue: DefaultFailingValue,
		AcceptedSet:  []string{"ok"},
		Message:      DefaultMessage,
		MaxLength:    DefaultMaxLength,
		TextKinds:    model.TextKinds(),
	}
}

// Validate checks that the configuration still forces every selection widget
// into a failing state.
func (c Config) Validate() error {
	if len(c.Options) == 0 {
		return errors.New("fixture: at least one option is required")
	}
	if !contains(c.Options, c.FailingValue) {
		return fmt.Errorf("fixture: failing value %q is not an option", c.FailingValue)
	}
	if len([]rune(c.FailingValue)) <= c.MaxLength {
		return fmt.Errorf("fixture: failing value %q passes the length limit %d", c.FailingValue, c.MaxLength)
	}
	// The twin column is seeded with {FailingValue}; its validator must reject it.
	if validation.NewExactSet(c.Message, c.AcceptedSet...).Validate([]string{c.FailingValue}) == nil {
		return fmt.Errorf("fixture: failing value %q is the accepted set", c.FailingValue)
	}
	for _, label := range c.AcceptedSet {
		if !contains(c.Options, label) {
			return fmt.Errorf("fixture: accepted label %q is not an option", label)
		}
	}
	if strings.TrimSpace(c.Message) == "" {
		return errors.New("fixture: message is required")
	}
	return nil
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.Title) == "" {
		c.Title = defaults.Title
	}
	if len(c.Options) == 0 {
		c.Options = defaults.Options
	}
	if c.FailingValue == "" {
		c.FailingValue = defaults.FailingValue
	}
	if len(c.AcceptedSet) == 0 {
		c.AcceptedSet = defaults.AcceptedSet
	}
	if c.Message == "" {
		c.Message = defaults.Message
	}
	if c.MaxLength <= 0 {
		c.MaxLength = defaults.MaxLength
	}
	if c.TextKinds == nil {
		c.TextKinds = defaults.TextKinds
	}
	return c
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
