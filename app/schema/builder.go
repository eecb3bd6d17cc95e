package schema

import (
	"fmt"
	"time"

	"github.com/schemapress/schemapress/app/content"
	"github.com/schemapress/schemapress/app/database"
	"github.com/schemapress/schemapress/app/settings"
)

const (
	schemaContext    = "https://schema.org"
	descriptionWords = 30
	minDescription   = 50
	maxReviews       = 10
	minReviewWords   = 100
)

// Post types map to their schema.org document type; unknown types fall back
// to WebPage.
var postTypeMap = map[string]string{
	"product": "Product",
	"post":    "Article",
	"article": "Article",
	"page":    "WebPage",
}

var availabilityMap = map[string]string{
	"instock":     "https://schema.org/InStock",
	"outofstock":  "https://schema.org/OutOfStock",
	"onbackorder": "https://schema.org/PreOrder",
}

// SKU fallback metadata keys checked in order before a PRODUCT-{id} value is
// generated.
var skuMetaKeys = []string{"_sku", "sku", "product_sku", "artikelnummer"}

type Builder struct {
	hooks *Hooks
}

func NewBuilder(hooks *Hooks) *Builder {
	return &Builder{hooks: hooks}
}

// Run maps a product plus the settings record into a schema.org document.
// Offers, review, and aggregateRating sections are built only when their
// feature flag is enabled, and omitted entirely (never emitted empty) when
// no data and no defaults are available.
func (b *Builder) Run(in Input) Document {
	p := in.Product
	s := in.Settings
	ctx := &Context{Product: p, Settings: s}

	docType, ok := postTypeMap[p.PostType]
	if !ok {
		docType = "WebPage"
	}
	if docType == "Product" && !s.EnableProductSchema {
		docType = "WebPage"
	}

	doc := Document{
		"@context":    schemaContext,
		"@type":       docType,
		"name":        p.Title,
		"description": buildDescription(p, s),
		"url":         entityURL(p, in.BaseURL),
	}

	images := buildImages(p, s, docType)
	if len(images) > 0 {
		doc["image"] = images
	}

	if docType == "Product" {
		doc["sku"] = resolveSKU(p, in.Meta)
		doc["brand"] = buildBrand(p, s)

		if s.EnableAutoOffers {
			if offers := b.buildOffers(in, ctx); offers != nil {
				doc["offers"] = offers
			}
		}
		if s.EnableAutoRating {
			if rating := b.buildAggregateRating(p, s, ctx); rating != nil {
				doc["aggregateRating"] = rating
			}
		}
		if s.EnableAutoReviews {
			if reviews := b.buildReviews(in, ctx); reviews != nil {
				doc["review"] = reviews
			}
		}
	}

	return b.hooks.apply(StageDocument, doc, ctx)
}

func buildDescription(p *database.Product, s *settings.Settings) string {
	description := p.Excerpt
	if description == "" {
		description = content.TrimWords(content.StripMarkup(p.Body), descriptionWords)
	}
	if len(description) < minDescription {
		pad := fmt.Sprintf(" %s is available at %s.", p.Title, s.SiteName)
		description = description + pad
	}
	return description
}

func entityURL(p *database.Product, baseURL string) string {
	if p.CanonicalURL != "" {
		return p.CanonicalURL
	}
	return fmt.Sprintf("%s/products/%s", baseURL, p.Slug)
}

// buildImages collects the primary and gallery images; a Product document
// must never carry an empty image list, so the configured placeholder is
// substituted when the entity has none.
func buildImages(p *database.Product, s *settings.Settings, docType string) []string {
	var images []string
	if p.ImageURL != "" {
		images = append(images, p.ImageURL)
	}
	for _, g := range p.GalleryURLs {
		if g != "" && g != p.ImageURL {
			images = append(images, g)
		}
	}

	if len(images) == 0 && docType == "Product" && s.PlaceholderImage != "" {
		images = append(images, s.PlaceholderImage)
	}

	return images
}

func resolveSKU(p *database.Product, meta map[string]string) string {
	if p.SKU != "" {
		return p.SKU
	}
	for _, key := range skuMetaKeys {
		if v, ok := meta[key]; ok && v != "" {
			return v
		}
	}
	return fmt.Sprintf("PRODUCT-%s", p.ID)
}

func buildBrand(p *database.Product, s *settings.Settings) Document {
	name := s.OrganizationName
	if p.Category != "" {
		name = p.Category
	}
	return Document{
		"@type": "Brand",
		"name":  name,
	}
}

// buildOffers builds one offer per variant, collapsing to a single
// dictionary when exactly one offer was produced. Products without variants
// yield one offer from the product itself.
func (b *Builder) buildOffers(in Input, ctx *Context) any {
	p := in.Product
	s := in.Settings

	var offers []Document
	if len(in.Variants) > 0 {
		for _, v := range in.Variants {
			offers = append(offers, b.buildOffer(p, s, v.Price, v.StockStatus, in.BaseURL, ctx))
		}
	} else {
		offers = append(offers, b.buildOffer(p, s, p.Price, p.StockStatus, in.BaseURL, ctx))
	}

	if len(offers) == 1 {
		return offers[0]
	}
	values := make([]any, 0, len(offers))
	for _, o := range offers {
		values = append(values, o)
	}
	return values
}

func (b *Builder) buildOffer(p *database.Product, s *settings.Settings, price float64, stockStatus, baseURL string, ctx *Context) Document {
	offer := Document{
		"@type":         "Offer",
		"url":           entityURL(p, baseURL),
		"itemCondition": "https://schema.org/NewCondition",
		"seller": Document{
			"@type": "Organization",
			"name":  s.OrganizationName,
		},
	}

	if price <= 0 {
		price = s.DefaultPrice
	}
	if price > 0 {
		currency := p.Currency
		if currency == "" {
			currency = s.DefaultCurrency
		}
		offer["price"] = fmt.Sprintf("%.2f", price)
		offer["priceCurrency"] = currency
	}

	availability, ok := availabilityMap[stockStatus]
	if !ok {
		availability = availabilityMap["instock"]
	}
	offer["availability"] = availability

	if p.SaleStart != nil {
		offer["priceValidFrom"] = p.SaleStart.Format(time.RFC3339)
	}
	if p.SaleEnd != nil {
		offer["priceValidUntil"] = p.SaleEnd.Format(time.RFC3339)
	}

	return b.hooks.apply(StageOffers, offer, ctx)
}

// buildAggregateRating prefers the entity's real rating and falls back to
// the configured defaults when no real reviews exist. Nil when neither is
// available.
func (b *Builder) buildAggregateRating(p *database.Product, s *settings.Settings, ctx *Context) Document {
	value := p.RatingValue
	count := p.RatingCount
	if count == 0 {
		value = s.DefaultRatingValue
		count = s.DefaultRatingCount
	}
	if count == 0 || value <= 0 {
		return nil
	}

	rating := Document{
		"@type":       "AggregateRating",
		"ratingValue": value,
		"reviewCount": count,
		"bestRating":  5,
		"worstRating": 1,
	}
	return b.hooks.apply(StageRating, rating, ctx)
}

// buildReviews lists real approved reviews (capped) or synthesizes a single
// review from the configured defaults. Nil when reviews are impossible to
// produce.
func (b *Builder) buildReviews(in Input, ctx *Context) any {
	p := in.Product
	s := in.Settings

	if len(in.Reviews) > 0 {
		reviews := in.Reviews
		if len(reviews) > maxReviews {
			reviews = reviews[:maxReviews]
		}
		values := make([]any, 0, len(reviews))
		for _, r := range reviews {
			values = append(values, b.buildReview(r, ctx))
		}
		if len(values) == 1 {
			return values[0]
		}
		return values
	}

	if s.DefaultRatingValue <= 0 {
		return nil
	}

	body := content.StripMarkup(p.Body)
	if content.WordCount(body) < minReviewWords {
		body = fmt.Sprintf("%s convinced us with solid quality and reliable everyday performance.", p.Title)
	} else {
		body = content.TrimWords(body, descriptionWords)
	}

	review := Document{
		"@type":  "Review",
		"author": Document{"@type": "Person", "name": s.OrganizationName},
		"reviewRating": Document{
			"@type":       "Rating",
			"ratingValue": s.DefaultRatingValue,
			"bestRating":  5,
			"worstRating": 1,
		},
		"datePublished": time.Now().Format("2006-01-02"),
		"reviewBody":    body,
	}
	return b.hooks.apply(StageReview, review, ctx)
}

func (b *Builder) buildReview(r database.Review, ctx *Context) Document {
	review := Document{
		"@type":  "Review",
		"author": Document{"@type": "Person", "name": r.Author},
		"reviewRating": Document{
			"@type":       "Rating",
			"ratingValue": r.Rating,
			"bestRating":  5,
			"worstRating": 1,
		},
		"datePublished": r.PublishedAt.Format("2006-01-02"),
	}
	if r.Body != "" {
		review["reviewBody"] = r.Body
	}
	return b.hooks.apply(StageReview, review, ctx)
}
