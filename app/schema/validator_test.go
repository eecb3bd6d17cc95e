package schema

import (
	"strings"
	"testing"

	"github.com/schemapress/schemapress/app/database"
)

func validProductDoc() Document {
	return Document{
		"@context": "https://schema.org",
		"@type":    "Product",
		"name":     "Widget",
		"image":    []string{"https://shop.example.com/img/widget.jpg"},
		"offers": Document{
			"@type":         "Offer",
			"price":         "19.99",
			"priceCurrency": "EUR",
			"availability":  "https://schema.org/InStock",
			"url":           "https://shop.example.com/products/widget",
		},
		"aggregateRating": Document{
			"@type":       "AggregateRating",
			"ratingValue": 4.5,
			"reviewCount": 150,
			"bestRating":  5,
		},
	}
}

func TestValidate_ValidProduct(t *testing.T) {
	result := Validate(validProductDoc())

	if !result.Valid {
		t.Errorf("Expected valid document, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got %v", result.Errors)
	}
	if result.Score != 100 {
		t.Errorf("Expected score 100, got %d", result.Score)
	}
}

func TestValidate_NilDocument(t *testing.T) {
	result := Validate(nil)

	if result.Valid {
		t.Error("Expected nil document to be invalid")
	}
	if result.Score != 0 {
		t.Errorf("Expected score 0, got %d", result.Score)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "document is empty" {
		t.Errorf("Expected single 'document is empty' error, got %v", result.Errors)
	}
}

func TestValidate_ProductMissingCommerceData(t *testing.T) {
	doc := Document{
		"@type": "Product",
		"name":  "Widget",
		"image": []string{"https://shop.example.com/img/widget.jpg"},
	}

	result := Validate(doc)

	if result.Valid {
		t.Error("Expected product without commerce data to be invalid")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected exactly one error, got %v", result.Errors)
	}
	expected := "product requires at least one of: offers, review, aggregateRating"
	if result.Errors[0] != expected {
		t.Errorf("Expected %q, got %q", expected, result.Errors[0])
	}
}

func TestValidate_ProductMissingName(t *testing.T) {
	doc := validProductDoc()
	delete(doc, "name")

	result := Validate(doc)

	if result.Valid {
		t.Error("Expected invalid document")
	}
	found := false
	for _, e := range result.Errors {
		if e == "missing required field: name" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected missing name error, got %v", result.Errors)
	}
}

func TestValidate_OfferMissingPrice(t *testing.T) {
	doc := validProductDoc()
	offer := doc["offers"].(Document)
	delete(offer, "price")
	delete(offer, "priceCurrency")

	result := Validate(doc)

	if result.Valid {
		t.Error("Expected invalid document")
	}
	if len(result.Errors) != 2 {
		t.Errorf("Expected 2 offer errors, got %v", result.Errors)
	}
	for _, e := range result.Errors {
		if !strings.HasPrefix(e, "offers is missing required field:") {
			t.Errorf("Unexpected error %q", e)
		}
	}
}

func TestValidate_OfferArrayEachChecked(t *testing.T) {
	doc := validProductDoc()
	doc["offers"] = []any{
		Document{"price": "17.99", "priceCurrency": "EUR", "availability": "x", "url": "y"},
		Document{"priceCurrency": "EUR", "availability": "x", "url": "y"},
	}

	result := Validate(doc)

	if result.Valid {
		t.Error("Expected invalid document when one offer lacks a price")
	}
	if len(result.Errors) != 1 || result.Errors[0] != "offers is missing required field: price" {
		t.Errorf("Expected single offer price error, got %v", result.Errors)
	}
}

func TestValidate_RatingMissingCount(t *testing.T) {
	doc := validProductDoc()
	rating := doc["aggregateRating"].(Document)
	delete(rating, "reviewCount")

	result := Validate(doc)

	if result.Valid {
		t.Error("Expected invalid document")
	}
	expected := "aggregateRating is missing required field: reviewCount or ratingCount"
	if len(result.Errors) != 1 || result.Errors[0] != expected {
		t.Errorf("Expected %q, got %v", expected, result.Errors)
	}
}

func TestValidate_RatingCountAlias(t *testing.T) {
	doc := validProductDoc()
	rating := doc["aggregateRating"].(Document)
	delete(rating, "reviewCount")
	rating["ratingCount"] = 150

	result := Validate(doc)

	if !result.Valid {
		t.Errorf("Expected ratingCount to satisfy the count rule, got %v", result.Errors)
	}
}

func TestValidate_ReviewFields(t *testing.T) {
	doc := validProductDoc()
	doc["review"] = Document{
		"@type":        "Review",
		"reviewRating": Document{"ratingValue": 5},
	}

	result := Validate(doc)

	if result.Valid {
		t.Error("Expected invalid document for review without author")
	}
	if len(result.Errors) != 1 || result.Errors[0] != "review is missing required field: author" {
		t.Errorf("Expected review author error, got %v", result.Errors)
	}
}

func TestValidate_GenericDocument(t *testing.T) {
	result := Validate(Document{
		"@type":       "WebPage",
		"name":        "About",
		"description": "All about the shop.",
	})

	if !result.Valid {
		t.Errorf("Expected valid generic document, got %v", result.Errors)
	}
	if result.Score != 100 {
		t.Errorf("Expected score 100, got %d", result.Score)
	}
}

func TestValidate_GenericMissingDescriptionWarns(t *testing.T) {
	result := Validate(Document{
		"@type": "WebPage",
		"name":  "About",
	})

	if !result.Valid {
		t.Error("Expected missing description to warn, not fail")
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != "description is recommended" {
		t.Errorf("Expected description warning, got %v", result.Warnings)
	}
	if result.Score != 95 {
		t.Errorf("Expected score 95 for one pass and one warning, got %d", result.Score)
	}
}

func TestValidate_BuiltDocumentsAreValid(t *testing.T) {
	sparse := testProduct()
	sparse.Price = 0
	sparse.ImageURL = ""
	sparse.SKU = ""
	sparse.Currency = ""

	for name, p := range map[string]*database.Product{
		"full":   testProduct(),
		"sparse": sparse,
	} {
		doc := NewBuilder(NewHooks()).Run(testInput(p))
		result := Validate(doc)
		if !result.Valid {
			t.Errorf("%s: expected built document to validate, got %v", name, result.Errors)
		}
	}
}

func TestComputeScore_Clamping(t *testing.T) {
	cases := []struct {
		passed, errors, warnings int
		expected                 int
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 100},
		{3, 0, 0, 100},
		{0, 1, 0, 0},
		{1, 2, 0, 60},
		{1, 0, 4, 80},
		{0, 0, 1, 0},
	}

	for _, c := range cases {
		r := ValidationResult{
			Passed:   make([]string, c.passed),
			Errors:   make([]string, c.errors),
			Warnings: make([]string, c.warnings),
		}
		if got := computeScore(&r); got != c.expected {
			t.Errorf("passed=%d errors=%d warnings=%d: expected %d, got %d",
				c.passed, c.errors, c.warnings, c.expected, got)
		}
	}
}

func TestSerialize_NoHTMLEscaping(t *testing.T) {
	out, err := Serialize(Document{"url": "https://shop.example.com/a?b=1&c=2"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Contains(out, `\u0026`) {
		t.Errorf("Expected unescaped ampersand, got %s", out)
	}
	if !strings.Contains(out, "&c=2") {
		t.Errorf("Expected literal URL in output, got %s", out)
	}
}

func TestScriptTag(t *testing.T) {
	tag, err := ScriptTag(Document{"@type": "Product"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasPrefix(tag, `<script type="application/ld+json">`) {
		t.Errorf("Expected ld+json script prefix, got %s", tag)
	}
	if !strings.HasSuffix(tag, "</script>") {
		t.Errorf("Expected closing script tag, got %s", tag)
	}
}
