package content

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title: accents stripped, lowercased,
// every run of non-alphanumerics collapsed to a single hyphen, edge
// hyphens trimmed. "Hello World!!" becomes "hello-world".
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, title)
	if err != nil {
		s = title
	}

	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
