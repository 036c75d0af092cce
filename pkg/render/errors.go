package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-fielderrors/pkg/model"
)

// ErrorMapping groups indicator messages by field id. Page level messages
// describe widgets that never made it onto the page.
type ErrorMapping struct {
	Fields map[string][]string
	Page   []string
}

// CollectErrors gathers the active indicator messages of a page snapshot.
// Messages are trimmed and deduplicated; an active indicator with an empty
// message still gets an entry so renderers can flag it.
func CollectErrors(page model.Page) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}

	for _, field := range page.Fields() {
		if !field.Error.Active {
			continue
		}
		key := fieldKey(field)
		messages := normalizeMessages([]string{field.Error.Message})
		existing, seen := mapping.Fields[key]
		if !seen {
			existing = []string{}
		}
		mapping.Fields[key] = append(existing, messages...)
	}

	for _, skipped := range page.Skipped {
		mapping.Page = append(mapping.Page, fmt.Sprintf("%s skipped: %s", skipped.Kind, strings.TrimSpace(skipped.Reason)))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Page = normalizeMessages(mapping.Page)
	return mapping
}

// ActiveCount reports how many fields show an error indicator.
func (m ErrorMapping) ActiveCount() int {
	return len(m.Fields)
}

func fieldKey(field model.Field) string {
	if id := strings.TrimSpace(field.ID); id != "" {
		return id
	}
	return field.Kind.String()
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
