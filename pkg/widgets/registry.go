package widgets

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-fielderrors/pkg/model"
)

// Factory constructs a widget of a single kind with an empty caption.
type Factory func() (Component, error)

// Registry maps widget kinds to factories. It replaces construct-by-name
// lookups with a table fixed at registration time; the latest registration
// for a kind wins.
type Registry struct {
	mu        sync.RWMutex
	factories map[model.Kind]Factory
}

// NewRegistry constructs a registry with every built-in kind registered.
func NewRegistry() *Registry {
	reg := NewEmptyRegistry()
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry that resolves nothing until kinds
// are registered.
func NewEmptyRegistry() *Registry {
	return &Registry{factories: make(map[model.Kind]Factory)}
}

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind model.Kind, factory Factory) error {
	if r == nil {
		return errors.New("widgets: registry is nil")
	}
	if strings.TrimSpace(string(kind)) == "" {
		return errors.New("widgets: kind is required")
	}
	if factory == nil {
		return fmt.Errorf("widgets: factory for %q is required", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[kind] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind model.Kind, factory Factory) {
	if err := r.Register(kind, factory); err != nil {
		panic(err)
	}
}

// Has reports whether kind resolves to a factory.
func (r *Registry) Has(kind model.Kind) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[kind]
	return ok
}

// Kinds returns the registered kinds sorted by name.
func (r *Registry) Kinds() []model.Kind {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]model.Kind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// New constructs a widget of the given kind. Unregistered kinds fail with
// ErrUnknownKind; factories that error, panic or return nil fail with
// ErrConstruction.
func (r *Registry) New(kind model.Kind) (component Component, err error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %q (nil registry)", ErrUnknownKind, kind)
	}
	r.mu.RLock()
	factory, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			component = nil
			err = fmt.Errorf("%w: %q: panic: %v", ErrConstruction, kind, recovered)
		}
	}()

	component, err = factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrConstruction, kind, err)
	}
	if component == nil {
		return nil, fmt.Errorf("%w: %q: factory returned nil", ErrConstruction, kind)
	}
	return component, nil
}

func (r *Registry) registerBuiltins() {
	selection := map[model.Kind]func(string) *Select{
		model.KindComboBox:      NewComboBox,
		model.KindListSelect:    NewListSelect,
		model.KindNativeSelect:  NewNativeSelect,
		model.KindTwinColSelect: NewTwinColSelect,
	}
	for kind, ctor := range selection {
		ctor := ctor
		r.MustRegister(kind, func() (Component, error) {
			return ctor(""), nil
		})
	}

	text := map[model.Kind]func() *TextInput{
		model.KindTextField:     NewTextField,
		model.KindTextArea:      NewTextArea,
		model.KindRichTextArea:  NewRichTextArea,
		model.KindPasswordField: NewPasswordField,
	}
	for kind, ctor := range text {
		ctor := ctor
		r.MustRegister(kind, func() (Component, error) {
			return ctor(), nil
		})
	}
}
