package content

import (
	"strings"

	"codeberg.org/readeck/go-readability"
)

// ExtractMainText runs readability over an HTML body and returns the plain
// text of the main content block. Falls back to stripping the raw markup when
// readability cannot find an article.
func ExtractMainText(html string) string {
	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err == nil && article.Content != "" {
		return StripMarkup(article.Content)
	}
	return StripMarkup(html)
}
