package catalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/pemistahl/lingua-go"

	"github.com/schemapress/schemapress/app/content"
	"github.com/schemapress/schemapress/app/database"
)

const excerptWords = 55

var priceRe = regexp.MustCompile(`(\d+(?:[.,]\d{1,2})?)\s*(?:€|EUR|USD|\$)|(?:€|EUR|USD|\$)\s*(\d+(?:[.,]\d{1,2})?)`)

// ImportResult summarizes one import run against a single source.
type ImportResult struct {
	Source  string `json:"source"`
	Total   int    `json:"total"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
}

// Importer fetches product feeds and upserts their items into the catalog.
// Items whose content hash matches the stored product are skipped.
type Importer struct {
	products   database.ProductRepository
	parser     *gofeed.Parser
	httpClient *http.Client
	detector   lingua.LanguageDetector
	userAgent  string
}

func NewImporter(products database.ProductRepository, httpClient *http.Client, userAgent string) *Importer {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.German, lingua.English).
		Build()

	return &Importer{
		products:   products,
		parser:     gofeed.NewParser(),
		httpClient: httpClient,
		detector:   detector,
		userAgent:  userAgent,
	}
}

// Run imports one source end to end.
func (i *Importer) Run(ctx context.Context, source *Source) (*ImportResult, error) {
	data, err := i.fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	feed, err := i.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	result := &ImportResult{Source: source.Name}

	items := feed.Items
	if source.Settings.MaxItems > 0 && len(items) > source.Settings.MaxItems {
		items = items[:source.Settings.MaxItems]
	}

	for _, item := range items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		result.Total++

		product := i.mapItem(item, source)

		existing, err := i.products.GetBySlug(product.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to look up product %q: %w", product.Slug, err)
		}
		if existing != nil && existing.ContentHash == product.ContentHash {
			result.Skipped++
			continue
		}

		_, created, err := i.products.Upsert(product)
		if err != nil {
			return nil, fmt.Errorf("failed to store product %q: %w", product.Slug, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	return result, nil
}

func (i *Importer) fetch(ctx context.Context, source *Source) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, source.GetTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", i.userAgent)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (i *Importer) mapItem(item *gofeed.Item, source *Source) database.Product {
	body := item.Content
	if body == "" {
		body = item.Description
	}
	plain := content.StripMarkup(body)

	product := database.Product{
		Source:      source.Name,
		Slug:        Slugify(item.Title),
		Title:       strings.TrimSpace(item.Title),
		Body:        body,
		Excerpt:     content.TrimWords(plain, excerptWords),
		Status:      "published",
		PostType:    source.PostType,
		Currency:    source.Currency,
		StockStatus: "instock",
		Category:    source.Category,
		Language:    i.detectLanguage(item.Title + " " + plain),
		ContentHash: i.contentHash(item),
	}

	if len(item.Categories) > 0 {
		product.Tags = item.Categories
	}
	if item.Image != nil {
		product.ImageURL = item.Image.URL
	} else if len(item.Enclosures) > 0 && item.Enclosures[0] != nil &&
		strings.HasPrefix(item.Enclosures[0].Type, "image/") {
		product.ImageURL = item.Enclosures[0].URL
	}
	if item.Link != "" {
		product.CanonicalURL = item.Link
	}

	product.Price = ParsePrice(item.Title + " " + plain)

	return product
}

func (i *Importer) detectLanguage(text string) string {
	language, ok := i.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(language.IsoCode639_1().String())
}

func (i *Importer) contentHash(item *gofeed.Item) string {
	payload := fmt.Sprintf("%s|%s|%s", item.Title, item.Link, item.Description)
	hash := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(hash[:])
}

// ParsePrice extracts the first currency-marked amount from text. A comma
// decimal separator is treated as a decimal point. Returns 0 when no price
// is present.
func ParsePrice(text string) float64 {
	match := priceRe.FindStringSubmatch(text)
	if match == nil {
		return 0
	}

	raw := match[1]
	if raw == "" {
		raw = match[2]
	}
	raw = strings.ReplaceAll(raw, ",", ".")

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return price
}
