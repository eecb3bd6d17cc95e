package aisearch

import (
	"regexp"
	"strings"
)

const maxEntitiesPerKind = 10

var knownLocations = []string{
	"Berlin", "Hamburg", "München", "Köln", "Frankfurt", "Stuttgart",
	"Düsseldorf", "Leipzig", "Wien", "Zürich", "London", "Paris",
	"New York", "Amsterdam",
}

var (
	brandRe       = regexp.MustCompile(`\b[A-ZÄÖÜ][a-zäöüß]+(?:[A-Z][a-zäöüß]+)+\b`)
	productLineRe = regexp.MustCompile(`\b([A-ZÄÖÜ][\p{L}0-9]+)\s+(Pro|Plus|Max|Premium|Edition|Series|Model)\b`)
	orgRe         = regexp.MustCompile(`\b([A-ZÄÖÜ][\p{L}&.\- ]{1,40}?)\s+(GmbH|AG|Inc\.|LLC|Ltd\.|Co\.)`)
)

// ExtractEntities runs the four independent entity heuristics over plain
// text. Each family is deduplicated and capped separately.
func ExtractEntities(plain string) Entities {
	e := Entities{}

	// CamelCase brand-like tokens
	e.Brands = dedupeCap(brandRe.FindAllString(plain, -1))

	for _, loc := range knownLocations {
		if strings.Contains(plain, loc) {
			e.Locations = append(e.Locations, loc)
		}
	}
	e.Locations = dedupeCap(e.Locations)

	for _, m := range productLineRe.FindAllStringSubmatch(plain, -1) {
		e.ProductLines = append(e.ProductLines, m[1]+" "+m[2])
	}
	e.ProductLines = dedupeCap(e.ProductLines)

	for _, m := range orgRe.FindAllStringSubmatch(plain, -1) {
		e.Organizations = append(e.Organizations, strings.TrimSpace(m[0]))
	}
	e.Organizations = dedupeCap(e.Organizations)

	return e
}

func dedupeCap(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == maxEntitiesPerKind {
			break
		}
	}
	return out
}
