package schema

import (
	"fmt"

	"github.com/schemapress/schemapress/app/database"
	"github.com/schemapress/schemapress/app/faq"
	"github.com/schemapress/schemapress/app/settings"
)

// Organization builds the standalone Organization document emitted in the
// page head alongside the per-page document.
func Organization(s *settings.Settings, baseURL string) Document {
	doc := Document{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     s.OrganizationName,
		"url":      baseURL,
	}
	if s.LogoURL != "" {
		doc["logo"] = s.LogoURL
	}
	return doc
}

// Breadcrumbs builds a BreadcrumbList of home, optional category, and the
// entity itself.
func Breadcrumbs(p *database.Product, s *settings.Settings, baseURL string) Document {
	items := []Document{
		{
			"@type":    "ListItem",
			"position": 1,
			"name":     s.SiteName,
			"item":     baseURL,
		},
	}

	position := 2
	if p.Category != "" {
		items = append(items, Document{
			"@type":    "ListItem",
			"position": position,
			"name":     p.Category,
			"item":     fmt.Sprintf("%s/category/%s", baseURL, p.Category),
		})
		position++
	}

	items = append(items, Document{
		"@type":    "ListItem",
		"position": position,
		"name":     p.Title,
		"item":     entityURL(p, baseURL),
	})

	values := make([]any, 0, len(items))
	for _, item := range items {
		values = append(values, item)
	}

	return Document{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": values,
	}
}

// FAQPage wraps extracted FAQ entries. Returns nil for an empty entry list;
// an empty FAQPage document must never be emitted.
func FAQPage(entries []faq.Entry) Document {
	if len(entries) == 0 {
		return nil
	}

	questions := faq.ToSchema(entries)
	values := make([]any, 0, len(questions))
	for _, q := range questions {
		values = append(values, q)
	}

	return Document{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": values,
	}
}
