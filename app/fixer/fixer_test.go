package fixer

import (
	"context"
	"strings"
	"testing"

	"github.com/schemapress/schemapress/app/database"
	"github.com/schemapress/schemapress/app/settings"
)

type fakeProducts struct {
	database.ProductRepository
	batch        []database.Product
	descriptions map[string]string
}

func (f *fakeProducts) ListBatch(offset, limit int) ([]database.Product, error) {
	if offset > 0 {
		return nil, nil
	}
	return f.batch, nil
}

func (f *fakeProducts) UpdateMetaDescription(id, description string) error {
	f.descriptions[id] = description
	return nil
}

type fakeEvents struct{ database.EventRepository }

func (fakeEvents) Insert(entityID, eventType, details string) error { return nil }

type fakeSettingsRepo struct{ database.SettingsRepository }

func (fakeSettingsRepo) GetAll() (map[string]string, error) { return nil, nil }

func TestFixer_FixMetaDescriptions_RendersProductTemplate(t *testing.T) {
	products := &fakeProducts{
		batch: []database.Product{
			{ID: "p1", Title: "Premium Coffee", PostType: "product", Price: 19.99, Currency: "EUR"},
			{ID: "p2", Title: "About", PostType: "page", Body: "<p>Our shop has been roasting beans since 1998.</p>"},
			{ID: "p3", Title: "Filled", PostType: "product", MetaDescription: "already set"},
		},
		descriptions: map[string]string{},
	}
	store := settings.NewStore(fakeSettingsRepo{})
	f := New(products, nil, fakeEvents{}, store, "https://shop.example.com")

	result, err := f.FixMetaDescriptions(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Changed != 2 {
		t.Errorf("Expected 2 changed entities, got %d", result.Changed)
	}

	expected := "Buy Premium Coffee for 19.99 EUR at Online Shop."
	if got := products.descriptions["p1"]; got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
	if got := products.descriptions["p2"]; !strings.HasPrefix(got, "Our shop") {
		t.Errorf("Expected page description from the body, got %q", got)
	}
	if _, ok := products.descriptions["p3"]; ok {
		t.Error("Expected filled description left alone")
	}
}

func TestFixer_RewriteLinks_UnwrapsDeadInternalLinks(t *testing.T) {
	f := New(nil, nil, nil, nil, "https://shop.example.com")
	known := map[string]bool{"widget": true}

	body := `<p>See the <a href="/products/widget">widget</a> and the ` +
		`<a href="/products/gone">old gadget</a>.</p>`

	fixed, changed, err := f.rewriteLinks(body, known)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !changed {
		t.Fatal("Expected body to change")
	}
	if !strings.Contains(fixed, `<a href="/products/widget">widget</a>`) {
		t.Errorf("Expected known link to survive, got %s", fixed)
	}
	if strings.Contains(fixed, `href="/products/gone"`) {
		t.Errorf("Expected dead link removed, got %s", fixed)
	}
	if !strings.Contains(fixed, "old gadget") {
		t.Errorf("Expected anchor text to survive, got %s", fixed)
	}
}

func TestFixer_RewriteLinks_RepointsStalePathAtProduct(t *testing.T) {
	f := New(nil, nil, nil, nil, "https://shop.example.com")
	known := map[string]bool{"widget": true}

	body := `<p>Buy the <a href="/old-category/widget">widget</a> today.</p>`

	fixed, changed, err := f.rewriteLinks(body, known)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !changed {
		t.Fatal("Expected stale path to be rewritten")
	}
	if !strings.Contains(fixed, `<a href="https://shop.example.com/products/widget">widget</a>`) {
		t.Errorf("Expected link repointed at the product, got %s", fixed)
	}
}

func TestFixer_RewriteLinks_CanonicalPathUntouched(t *testing.T) {
	f := New(nil, nil, nil, nil, "https://shop.example.com")
	known := map[string]bool{"widget": true}

	body := `<p><a href="https://shop.example.com/products/widget/">widget</a></p>`

	fixed, changed, err := f.rewriteLinks(body, known)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if changed {
		t.Errorf("Expected canonical link left alone, got %s", fixed)
	}
}

func TestFixer_RewriteLinks_ExternalLinksUntouched(t *testing.T) {
	f := New(nil, nil, nil, nil, "https://shop.example.com")

	body := `<p><a href="https://other.example.org/page">external</a></p>`

	fixed, changed, err := f.rewriteLinks(body, map[string]bool{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if changed {
		t.Error("Expected no change for external links")
	}
	if fixed != body {
		t.Errorf("Expected body unchanged, got %s", fixed)
	}
}

func TestFixer_RewriteLinks_AbsoluteInternalLink(t *testing.T) {
	f := New(nil, nil, nil, nil, "https://shop.example.com")

	body := `<p><a href="https://shop.example.com/products/gone">gone</a></p>`

	fixed, changed, err := f.rewriteLinks(body, map[string]bool{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !changed {
		t.Error("Expected absolute internal dead link to be unwrapped")
	}
	if strings.Contains(fixed, "<a ") {
		t.Errorf("Expected no anchors left, got %s", fixed)
	}
}

func TestFixer_RewriteLinks_NoAnchors(t *testing.T) {
	f := New(nil, nil, nil, nil, "https://shop.example.com")

	body := "<p>Plain text body.</p>"

	fixed, changed, err := f.rewriteLinks(body, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if changed || fixed != body {
		t.Errorf("Expected untouched body, got %s", fixed)
	}
}

func TestGenerateSKU(t *testing.T) {
	cases := []struct {
		slug     string
		expected string
	}{
		{"premium-kaffee", "SKU-PREMIUMKAFFE"},
		{"widget", "SKU-WIDGET"},
		{"a-b", "SKU-AB"},
	}

	for _, c := range cases {
		if got := generateSKU(c.slug); got != c.expected {
			t.Errorf("generateSKU(%q): expected %q, got %q", c.slug, c.expected, got)
		}
	}
}
