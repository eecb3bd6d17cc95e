package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9]+`)
	slugTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	slugUmlauts   = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")
)

// Slugify turns a title into a URL-safe slug: German umlauts expand to
// their digraphs, remaining diacritics are folded away, and anything
// outside [a-z0-9] collapses to a single hyphen.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugUmlauts.Replace(s)
	if folded, _, err := transform.String(slugTransform, s); err == nil {
		s = folded
	}
	s = slugInvalidRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
