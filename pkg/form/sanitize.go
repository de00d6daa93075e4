package form

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// StripMarkup removes HTML tags from free-text input. Entities produced by
// the sanitizer are decoded again so plain text such as "A & B" survives.
func StripMarkup(raw string) string {
	if raw == "" {
		return ""
	}
	return html.UnescapeString(markupSanitizer().Sanitize(raw))
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.StrictPolicy()
	})
	return markupPolicy
}
