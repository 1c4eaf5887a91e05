package voice

import (
	"html"
	"regexp"
	"strings"
)

var (
	breakTag = regexp.MustCompile(`<break\b[^>]*/?>`)
	anyTag   = regexp.MustCompile(`<[^>]*>`)
	spaces   = regexp.MustCompile(`\s+`)
)

// Flatten converts SSML to plain text for engines without markup support.
// Pause directives become commas so the engine still pauses briefly.
func Flatten(markup string) string {
	text := breakTag.ReplaceAllString(markup, ", ")
	text = anyTag.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = spaces.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, " ,", ",")
	return strings.Trim(text, ", ")
}
