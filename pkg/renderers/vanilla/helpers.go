package vanilla

import (
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-fielderrors/pkg/model"
)

var (
	policyOnce     sync.Once
	richTextPolicy *bluemonday.Policy
	messagePolicy  *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		richTextPolicy = bluemonday.UGCPolicy()
		messagePolicy = bluemonday.StrictPolicy()
	})
	return richTextPolicy, messagePolicy
}

// sanitizeRichText keeps user-generated formatting markup and drops scripts,
// handlers and unknown elements.
func sanitizeRichText(raw string) string {
	rich, _ := policies()
	return strings.TrimSpace(rich.Sanitize(raw))
}

// plainMessage strips every tag from an indicator message; the result is
// already entity-escaped and is emitted with the safe filter.
func plainMessage(raw string) string {
	_, strict := policies()
	return strings.TrimSpace(strict.Sanitize(raw))
}

// kindClass turns a kind into a CSS class suffix, e.g. "twin-col-select".
func kindClass(kind model.Kind) string {
	var sb strings.Builder
	for i, r := range strings.TrimSpace(kind.String()) {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
