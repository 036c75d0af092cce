package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles controls how the text renderer decorates each part of the page.
type Styles struct {
	Title     lipgloss.Style
	Column    lipgloss.Style
	Caption   lipgloss.Style
	Value     lipgloss.Style
	Indicator lipgloss.Style
	Valid     lipgloss.Style
	Muted     lipgloss.Style
}

// DefaultStyles returns the colored terminal palette.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Column:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Caption:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Indicator: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Valid:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true),
	}
}

// PlainStyles returns undecorated styles, useful for logs and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:     plain,
		Column:    plain,
		Caption:   plain,
		Value:     plain,
		Indicator: plain,
		Valid:     plain,
		Muted:     plain,
	}
}

// Option configures the TUI renderer and inspector.
type Option func(*settings)

type settings struct {
	driver PromptDriver
	styles Styles
	out    io.Writer
}

// WithPromptDriver overrides the prompt driver used by the inspector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *settings) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithStyles replaces the terminal palette.
func WithStyles(styles Styles) Option {
	return func(s *settings) {
		s.styles = styles
	}
}

// WithOutput directs inspector reports to w instead of the prompt driver.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

func newSettings(options []Option) settings {
	s := settings{styles: DefaultStyles()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}
	return s
}
