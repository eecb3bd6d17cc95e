package schema

import (
	"strings"
	"testing"

	"github.com/schemapress/schemapress/app/database"
	"github.com/schemapress/schemapress/app/settings"
)

func testSettings() *settings.Settings {
	return settings.FromMap(settings.Defaults())
}

func testProduct() *database.Product {
	return &database.Product{
		ID:          "prod-1",
		Slug:        "widget",
		SKU:         "W-100",
		Title:       "Widget",
		Body:        "<p>A fine widget for all widget needs, crafted from durable materials.</p>",
		PostType:    "product",
		Price:       19.99,
		Currency:    "EUR",
		StockStatus: "instock",
		ImageURL:    "https://shop.example.com/img/widget.jpg",
	}
}

func testInput(p *database.Product) Input {
	return Input{
		Product:  p,
		BaseURL:  "https://shop.example.com",
		Settings: testSettings(),
	}
}

func TestBuilder_Run_ProductDocument(t *testing.T) {
	builder := NewBuilder(NewHooks())

	doc := builder.Run(testInput(testProduct()))

	if doc["@context"] != "https://schema.org" {
		t.Errorf("Expected schema.org context, got %v", doc["@context"])
	}
	if doc["@type"] != "Product" {
		t.Errorf("Expected Product type, got %v", doc["@type"])
	}
	if doc["name"] != "Widget" {
		t.Errorf("Expected name Widget, got %v", doc["name"])
	}
	if doc["sku"] != "W-100" {
		t.Errorf("Expected sku W-100, got %v", doc["sku"])
	}

	offer, ok := doc["offers"].(Document)
	if !ok {
		t.Fatalf("Expected a single offer document, got %T", doc["offers"])
	}
	if offer["price"] != "19.99" {
		t.Errorf("Expected price '19.99', got %v", offer["price"])
	}
	if offer["priceCurrency"] != "EUR" {
		t.Errorf("Expected currency EUR, got %v", offer["priceCurrency"])
	}
	if offer["availability"] != "https://schema.org/InStock" {
		t.Errorf("Expected InStock availability, got %v", offer["availability"])
	}
	if offer["itemCondition"] != "https://schema.org/NewCondition" {
		t.Errorf("Expected NewCondition, got %v", offer["itemCondition"])
	}
}

func TestBuilder_Run_BuildTwiceIsIdenticalShape(t *testing.T) {
	builder := NewBuilder(NewHooks())
	in := testInput(testProduct())

	first := builder.Run(in)
	second := builder.Run(in)

	if len(first) != len(second) {
		t.Errorf("Expected identical document shape across runs, got %d vs %d keys", len(first), len(second))
	}
	if first["@type"] != second["@type"] || first["name"] != second["name"] {
		t.Error("Expected identical top-level values across runs")
	}
}

func TestBuilder_Run_AvailabilityMapping(t *testing.T) {
	cases := map[string]string{
		"instock":     "https://schema.org/InStock",
		"outofstock":  "https://schema.org/OutOfStock",
		"onbackorder": "https://schema.org/PreOrder",
		"unknown":     "https://schema.org/InStock",
		"":            "https://schema.org/InStock",
	}

	for stockStatus, expected := range cases {
		p := testProduct()
		p.StockStatus = stockStatus

		doc := NewBuilder(NewHooks()).Run(testInput(p))
		offer := doc["offers"].(Document)

		if offer["availability"] != expected {
			t.Errorf("Stock status %q: expected %s, got %v", stockStatus, expected, offer["availability"])
		}
	}
}

func TestBuilder_Run_DefaultCurrencyFallback(t *testing.T) {
	p := testProduct()
	p.Currency = ""

	doc := NewBuilder(NewHooks()).Run(testInput(p))
	offer := doc["offers"].(Document)

	if offer["priceCurrency"] != "EUR" {
		t.Errorf("Expected default currency EUR, got %v", offer["priceCurrency"])
	}
}

func TestBuilder_Run_ZeroPriceFallsBackToDefault(t *testing.T) {
	p := testProduct()
	p.Price = 0

	doc := NewBuilder(NewHooks()).Run(testInput(p))
	offer := doc["offers"].(Document)

	if offer["price"] != "9.99" {
		t.Errorf("Expected default price '9.99', got %v", offer["price"])
	}
	if offer["priceCurrency"] != "EUR" {
		t.Errorf("Expected default currency, got %v", offer["priceCurrency"])
	}
}

func TestBuilder_Run_RatingFallsBackToDefaults(t *testing.T) {
	doc := NewBuilder(NewHooks()).Run(testInput(testProduct()))

	rating, ok := doc["aggregateRating"].(Document)
	if !ok {
		t.Fatalf("Expected aggregateRating document, got %T", doc["aggregateRating"])
	}
	if rating["ratingValue"] != 4.5 {
		t.Errorf("Expected default rating value 4.5, got %v", rating["ratingValue"])
	}
	if rating["reviewCount"] != 150 {
		t.Errorf("Expected default review count 150, got %v", rating["reviewCount"])
	}
	if rating["bestRating"] != 5 || rating["worstRating"] != 1 {
		t.Errorf("Expected rating bounds 1..5, got %v..%v", rating["worstRating"], rating["bestRating"])
	}
}

func TestBuilder_Run_RealRatingWins(t *testing.T) {
	p := testProduct()
	p.RatingValue = 3.8
	p.RatingCount = 12

	doc := NewBuilder(NewHooks()).Run(testInput(p))
	rating := doc["aggregateRating"].(Document)

	if rating["ratingValue"] != 3.8 {
		t.Errorf("Expected real rating value 3.8, got %v", rating["ratingValue"])
	}
	if rating["reviewCount"] != 12 {
		t.Errorf("Expected real review count 12, got %v", rating["reviewCount"])
	}
}

func TestBuilder_Run_DisabledFlagsOmitSections(t *testing.T) {
	s := testSettings()
	s.EnableAutoOffers = false
	s.EnableAutoRating = false
	s.EnableAutoReviews = false

	in := testInput(testProduct())
	in.Settings = s

	doc := NewBuilder(NewHooks()).Run(in)

	if _, ok := doc["offers"]; ok {
		t.Error("Expected no offers when disabled")
	}
	if _, ok := doc["aggregateRating"]; ok {
		t.Error("Expected no aggregateRating when disabled")
	}
	if _, ok := doc["review"]; ok {
		t.Error("Expected no review when disabled")
	}
}

func TestBuilder_Run_ProductSchemaDisabled(t *testing.T) {
	s := testSettings()
	s.EnableProductSchema = false

	in := testInput(testProduct())
	in.Settings = s

	doc := NewBuilder(NewHooks()).Run(in)

	if doc["@type"] != "WebPage" {
		t.Errorf("Expected WebPage when product markup is disabled, got %v", doc["@type"])
	}
	if _, ok := doc["offers"]; ok {
		t.Error("Expected no offers when product markup is disabled")
	}
}

func TestBuilder_Run_PlaceholderImage(t *testing.T) {
	p := testProduct()
	p.ImageURL = ""

	doc := NewBuilder(NewHooks()).Run(testInput(p))

	images, ok := doc["image"].([]string)
	if !ok || len(images) != 1 {
		t.Fatalf("Expected one placeholder image, got %v", doc["image"])
	}
	if !strings.Contains(images[0], "placeholder") {
		t.Errorf("Expected placeholder image URL, got %s", images[0])
	}
}

func TestBuilder_Run_ArticleWithoutImageOmitsField(t *testing.T) {
	p := testProduct()
	p.PostType = "post"
	p.ImageURL = ""

	doc := NewBuilder(NewHooks()).Run(testInput(p))

	if doc["@type"] != "Article" {
		t.Errorf("Expected Article type, got %v", doc["@type"])
	}
	if _, ok := doc["image"]; ok {
		t.Error("Expected no image field for an article without images")
	}
}

func TestBuilder_Run_VariantOffers(t *testing.T) {
	in := testInput(testProduct())
	in.Variants = []database.Variant{
		{SKU: "W-100-S", Price: 17.99, StockStatus: "instock"},
		{SKU: "W-100-L", Price: 21.99, StockStatus: "outofstock"},
	}

	doc := NewBuilder(NewHooks()).Run(in)

	offers, ok := doc["offers"].([]any)
	if !ok {
		t.Fatalf("Expected offer array for two variants, got %T", doc["offers"])
	}
	if len(offers) != 2 {
		t.Fatalf("Expected 2 offers, got %d", len(offers))
	}

	second := offers[1].(Document)
	if second["price"] != "21.99" {
		t.Errorf("Expected variant price '21.99', got %v", second["price"])
	}
	if second["availability"] != "https://schema.org/OutOfStock" {
		t.Errorf("Expected OutOfStock for second variant, got %v", second["availability"])
	}
}

func TestBuilder_Run_SKUFallbackFromMeta(t *testing.T) {
	p := testProduct()
	p.SKU = ""

	in := testInput(p)
	in.Meta = map[string]string{"_sku": "META-1"}

	doc := NewBuilder(NewHooks()).Run(in)

	if doc["sku"] != "META-1" {
		t.Errorf("Expected SKU from metadata, got %v", doc["sku"])
	}
}

func TestBuilder_Run_GeneratedSKU(t *testing.T) {
	p := testProduct()
	p.SKU = ""

	doc := NewBuilder(NewHooks()).Run(testInput(p))

	if doc["sku"] != "PRODUCT-prod-1" {
		t.Errorf("Expected generated SKU, got %v", doc["sku"])
	}
}

func TestHooks_RunInRegistrationOrder(t *testing.T) {
	hooks := NewHooks()
	hooks.Register(StageDocument, func(doc Document, _ *Context) Document {
		doc["custom"] = "first"
		return doc
	})
	hooks.Register(StageDocument, func(doc Document, _ *Context) Document {
		doc["custom"] = doc["custom"].(string) + ",second"
		return doc
	})

	doc := NewBuilder(hooks).Run(testInput(testProduct()))

	if doc["custom"] != "first,second" {
		t.Errorf("Expected hooks applied in order, got %v", doc["custom"])
	}
}

func TestHooks_NilResultKeepsDocument(t *testing.T) {
	hooks := NewHooks()
	hooks.Register(StageDocument, func(Document, *Context) Document {
		return nil
	})

	doc := NewBuilder(hooks).Run(testInput(testProduct()))

	if doc == nil {
		t.Fatal("Expected document to survive a nil-returning hook")
	}
	if doc["name"] != "Widget" {
		t.Errorf("Expected original document, got %v", doc)
	}
}

func TestOrganization(t *testing.T) {
	s := testSettings()
	s.LogoURL = "https://shop.example.com/logo.png"

	doc := Organization(s, "https://shop.example.com")

	if doc["@type"] != "Organization" {
		t.Errorf("Expected Organization, got %v", doc["@type"])
	}
	if doc["logo"] != "https://shop.example.com/logo.png" {
		t.Errorf("Expected logo URL, got %v", doc["logo"])
	}
}

func TestBreadcrumbs_WithCategory(t *testing.T) {
	p := testProduct()
	p.Category = "Widgets"

	doc := Breadcrumbs(p, testSettings(), "https://shop.example.com")

	items, ok := doc["itemListElement"].([]any)
	if !ok {
		t.Fatalf("Expected item list, got %T", doc["itemListElement"])
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 breadcrumb items, got %d", len(items))
	}
	last := items[2].(Document)
	if last["position"] != 3 || last["name"] != "Widget" {
		t.Errorf("Unexpected final breadcrumb: %v", last)
	}
}

func TestFAQPage_EmptyEntries(t *testing.T) {
	if doc := FAQPage(nil); doc != nil {
		t.Errorf("Expected nil document for empty entries, got %v", doc)
	}
}
