package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type Link struct {
	Href   string
	Anchor string
}

// InternalLinks returns the links in an HTML body that point at the same
// site: either relative paths or absolute URLs under baseURL.
func InternalLinks(html, baseURL string) []Link {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if !IsInternalLink(href, baseURL) {
			return
		}

		links = append(links, Link{
			Href:   href,
			Anchor: strings.TrimSpace(s.Text()),
		})
	})

	return links
}

// IsInternalLink reports whether a href points at the same site: a
// relative path or an absolute URL under baseURL.
func IsInternalLink(href, baseURL string) bool {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" || strings.HasPrefix(href, "mailto:") {
		return false
	}
	if strings.HasPrefix(href, "/") {
		return true
	}
	return baseURL != "" && strings.HasPrefix(href, baseURL)
}

// LinkPathSlug extracts the trailing path segment of an internal link, the
// slug a catalog lookup can resolve.
func LinkPathSlug(href string) string {
	path := href
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}
