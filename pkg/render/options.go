package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carries per-request presentation settings.
type RenderOptions struct {
	// Theme supplies resolved tokens, CSS variables and asset URLs. Renderers
	// fall back to their built-in styling when nil.
	Theme *theme.RendererConfig
	// Standalone asks HTML renderers to emit a full document rather than a
	// fragment.
	Standalone bool
	// Stylesheet overrides the stylesheet URL linked from standalone pages.
	Stylesheet string
}
