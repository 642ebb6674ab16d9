package extract

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy       = bluemonday.StrictPolicy()
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// SanitizeDescription turns raw markup into plain text: tags stripped,
// HTML entities decoded, whitespace collapsed to single spaces.
func SanitizeDescription(raw string) string {
	if raw == "" {
		return ""
	}
	text := stripPolicy.Sanitize(raw)
	text = html.UnescapeString(text)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
