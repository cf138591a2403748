package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict drops every tag. Policies are safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// PlainText strips markup from user input and returns the text a reader
// would see. Entities are decoded so the stored value is plain text, not
// HTML; whatever renders it is responsible for escaping.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
