// Package layout provides the ordered containers the fixture page is
// assembled from.
package layout

import "github.com/goliatone/go-fielderrors/pkg/widgets"

// Orientation controls how a container stacks its children.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Node is either a widget or a nested container.
type Node interface{}

// Container keeps children in insertion order.
type Container struct {
	name        string
	orientation Orientation
	children    []Node
}

// NewHorizontal builds a container laying children out side by side.
func NewHorizontal(name string) *Container {
	return &Container{name: name, orientation: Horizontal}
}

// NewVertical builds a container stacking children top to bottom.
func NewVertical(name string) *Container {
	return &Container{name: name, orientation: Vertical}
}

func (c *Container) Name() string {
	return c.name
}

func (c *Container) Orientation() Orientation {
	return c.orientation
}

// AddComponent appends a widget. Nil widgets are ignored.
func (c *Container) AddComponent(component widgets.Component) {
	if component == nil {
		return
	}
	c.children = append(c.children, component)
}

// AddComponents appends widgets in order.
func (c *Container) AddComponents(components ...widgets.Component) {
	for _, component := range components {
		c.AddComponent(component)
	}
}

// AddContainer nests a child container.
func (c *Container) AddContainer(child *Container) {
	if child == nil {
		return
	}
	c.children = append(c.children, child)
}

// Children returns the direct children in insertion order.
func (c *Container) Children() []Node {
	return append([]Node(nil), c.children...)
}

// Containers returns the direct child containers.
func (c *Container) Containers() []*Container {
	var out []*Container
	for _, child := range c.children {
		if nested, ok := child.(*Container); ok {
			out = append(out, nested)
		}
	}
	return out
}

// Components returns the direct child widgets.
func (c *Container) Components() []widgets.Component {
	var out []widgets.Component
	for _, child := range c.children {
		if component, ok := child.(widgets.Component); ok {
			out = append(out, component)
		}
	}
	return out
}

// Walk visits every widget depth first in insertion order. Returning false
// from fn stops the walk.
func (c *Container) Walk(fn func(widgets.Component) bool) {
	c.walk(fn)
}

func (c *Container) walk(fn func(widgets.Component) bool) bool {
	for _, child := range c.children {
		switch typed := child.(type) {
		case *Container:
			if !typed.walk(fn) {
				return false
			}
		case widgets.Component:
			if !fn(typed) {
				return false
			}
		}
	}
	return true
}
