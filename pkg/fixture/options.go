package fixture

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/widgets"
)

// Option customises the builder.
type Option func(*Builder)

// WithConfig replaces the seed configuration. Empty fields fall back to
// DefaultConfig values. Kinds given through WithTextKinds take precedence
// regardless of option order.
func WithConfig(cfg Config) Option {
	return func(b *Builder) {
		b.config = cfg.withDefaults()
	}
}

// WithRegistry injects the widget factory table.
func WithRegistry(registry *widgets.Registry) Option {
	return func(b *Builder) {
		if registry != nil {
			b.registry = registry
		}
	}
}

// WithLogger overrides the logger used to report skipped widgets.
func WithLogger(logger *log.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTextKinds overrides the kinds constructed for the text column, including
// those of a configuration passed through WithConfig.
func WithTextKinds(kinds ...model.Kind) Option {
	return func(b *Builder) {
		b.textKinds = append([]model.Kind{}, kinds...)
	}
}

// WithIDGenerator overrides how page identifiers are minted.
func WithIDGenerator(fn func() string) Option {
	return func(b *Builder) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// DiscardLogger returns a logger that drops every entry.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard)
}
