package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/render"
)

const secretMask = "********"

// Renderer prints the page as terminal text: one line per field with its
// current value and, when active, the error indicator and message.
type Renderer struct {
	styles Styles
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI text renderer.
func New(options ...Option) *Renderer {
	s := newSettings(options)
	return &Renderer{styles: s.styles}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page model.Page, _ render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(r.Text(page)), nil
}

// Text formats the page without the renderer preconditions.
func (r *Renderer) Text(page model.Page) string {
	var b strings.Builder
	mapping := render.CollectErrors(page)

	if page.Title != "" {
		b.WriteString(r.styles.Title.Render(page.Title))
		b.WriteByte('\n')
	}

	width := captionWidth(page)
	for _, column := range page.Columns {
		b.WriteString(r.styles.Column.Render("[" + column.Name + "]"))
		b.WriteByte('\n')
		for _, field := range column.Fields {
			b.WriteString(r.fieldLine(field, width))
			b.WriteByte('\n')
		}
	}

	if len(mapping.Page) > 0 {
		b.WriteString(r.styles.Column.Render("[skipped]"))
		b.WriteByte('\n')
		for _, message := range mapping.Page {
			b.WriteString("  ")
			b.WriteString(r.styles.Muted.Render(message))
			b.WriteByte('\n')
		}
	}

	summary := fmt.Sprintf("%d/%d error indicators active", mapping.ActiveCount(), len(page.Fields()))
	b.WriteString(r.styles.Muted.Render(summary))
	b.WriteByte('\n')
	return b.String()
}

func (r *Renderer) fieldLine(field model.Field, width int) string {
	pad := strings.Repeat(" ", max(width-len([]rune(field.Caption)), 0))
	line := "  " + r.styles.Caption.Render(field.Caption) + pad + "  " + r.styles.Value.Render(DisplayValue(field))
	if field.Error.Active {
		line += "  " + r.styles.Indicator.Render("! "+field.Error.Message)
	} else {
		line += "  " + r.styles.Valid.Render("ok")
	}
	return line
}

// DisplayValue formats a field value for terminal output. Secret fields are
// always masked since snapshots never carry their value.
func DisplayValue(field model.Field) string {
	if field.Secret {
		return secretMask
	}
	if len(field.Value) == 0 {
		if field.Multi {
			return "{}"
		}
		return "(empty)"
	}
	if field.Multi {
		return "{" + strings.Join(field.Value, ", ") + "}"
	}
	return strings.ReplaceAll(field.Value[0], "\n", `\n`)
}

func captionWidth(page model.Page) int {
	width := 0
	for _, field := range page.Fields() {
		if n := len([]rune(field.Caption)); n > width {
			width = n
		}
	}
	return width
}
