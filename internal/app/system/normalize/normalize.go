// Package normalize canonicalizes user-supplied values before they are
// stored or compared.
package normalize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Email trims whitespace and lower-cases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace and strips any markup. Case is preserved, and
// entities produced by the sanitizer are decoded back to plain text so that
// names like "O'Brien" survive unchanged.
func Name(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// ID trims whitespace from an identifier taken from a path or query.
func ID(s string) string {
	return strings.TrimSpace(s)
}
