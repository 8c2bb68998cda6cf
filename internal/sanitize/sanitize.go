// Package sanitize cleans free-text form fields before they are stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text strips all markup from a free-text field and trims surrounding
// whitespace. Applied to every name, title, description, and text content
// before it reaches the folders document.
func Text(s string) string {
	cleaned := policy.Sanitize(s)
	// bluemonday entity-escapes what it keeps; stored text stays plain.
	cleaned = html.UnescapeString(cleaned)
	return strings.TrimSpace(cleaned)
}
