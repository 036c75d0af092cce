package render

import (
	"context"

	"github.com/goliatone/go-fielderrors/pkg/model"
)

// Renderer converts a page snapshot into a byte representation (HTML, text,
// JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page model.Page, options RenderOptions) ([]byte, error)
}
