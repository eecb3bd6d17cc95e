package fixer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/schemapress/schemapress/app/content"
	"github.com/schemapress/schemapress/app/database"
	"github.com/schemapress/schemapress/app/settings"
)

const (
	batchSize          = 200
	missingSchemaLimit = 1000
	descriptionWords   = 25
)

// FixResult reports one fixing pass: how many entities it changed and the
// per-entity failures it tolerated.
type FixResult struct {
	Name    string   `json:"name"`
	Changed int      `json:"changed"`
	Summary string   `json:"summary"`
	Errors  []string `json:"errors,omitempty"`
}

// Fixer repairs common catalog defects in best-effort batch passes. Each
// pass keeps going past individual failures and reports them afterwards.
type Fixer struct {
	products database.ProductRepository
	meta     database.MetaRepository
	events   database.EventRepository
	store    *settings.Store
	baseURL  string
}

func New(products database.ProductRepository, meta database.MetaRepository,
	events database.EventRepository, store *settings.Store, baseURL string) *Fixer {
	return &Fixer{
		products: products,
		meta:     meta,
		events:   events,
		store:    store,
		baseURL:  baseURL,
	}
}

// RunAll executes every pass in order and returns their results. Only a
// storage failure that breaks paging aborts the run.
func (f *Fixer) RunAll(ctx context.Context) ([]FixResult, error) {
	passes := []func(context.Context) (FixResult, error){
		f.MarkMissingSchema,
		f.FixMetaDescriptions,
		f.FixBrokenLinks,
		f.FixCanonicalURLs,
		f.FixNoindex,
		f.FixCommerceDefaults,
	}

	results := make([]FixResult, 0, len(passes))
	for _, pass := range passes {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := pass(ctx)
		if err != nil {
			return nil, err
		}
		slog.Info("Fix pass completed", "pass", result.Name, "changed", result.Changed, "errors", len(result.Errors))
		results = append(results, result)
	}

	return results, nil
}

// MarkMissingSchema flags entities that have never had markup generated so
// the next optimization run picks them up.
func (f *Fixer) MarkMissingSchema(ctx context.Context) (FixResult, error) {
	result := FixResult{Name: "missing_schema"}

	ids, err := f.meta.EntityIDsMissing(database.MetaSchemaAdded, missingSchemaLimit)
	if err != nil {
		return result, fmt.Errorf("failed to find entities without markup: %w", err)
	}

	for _, id := range ids {
		if err := f.meta.Set(id, database.MetaSchemaAdded, "0"); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		result.Changed++
	}

	result.Summary = fmt.Sprintf("flagged %d entities for markup generation", result.Changed)
	return result, nil
}

// FixMetaDescriptions fills empty meta descriptions. Commerce entities get
// the configured description template rendered with their name and price;
// everything else falls back to a trimmed excerpt of the body.
func (f *Fixer) FixMetaDescriptions(ctx context.Context) (FixResult, error) {
	result := FixResult{Name: "meta_descriptions"}

	cfg, err := f.store.Load()
	if err != nil {
		return result, fmt.Errorf("failed to load settings: %w", err)
	}

	err = f.eachProduct(ctx, func(p *database.Product) {
		if p.MetaDescription != "" {
			return
		}

		var description string
		if p.PostType == "product" {
			description = settings.RenderTemplate(cfg.MetaDescriptionTemplate, cfg.MetaTagValues(p))
		} else {
			plain := content.StripMarkup(p.Body)
			if plain == "" {
				return
			}
			description = content.TrimWords(plain, descriptionWords)
		}

		if err := f.products.UpdateMetaDescription(p.ID, description); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.ID, err))
			return
		}
		f.recordEvent(p.ID, "meta_description_generated", "")
		result.Changed++
	})
	if err != nil {
		return result, err
	}

	result.Summary = fmt.Sprintf("generated %d meta descriptions", result.Changed)
	return result, nil
}

// FixBrokenLinks rewrites internal links that point at unknown pages. A
// link whose trailing slug matches a published product is repointed at that
// product; anything else is unwrapped to its anchor text.
func (f *Fixer) FixBrokenLinks(ctx context.Context) (FixResult, error) {
	result := FixResult{Name: "broken_links"}

	refs, err := f.products.ListPublishedRefs()
	if err != nil {
		return result, fmt.Errorf("failed to list published pages: %w", err)
	}
	known := make(map[string]bool, len(refs))
	for _, ref := range refs {
		known[ref.Slug] = true
	}

	err = f.eachProduct(ctx, func(p *database.Product) {
		fixed, changed, err := f.rewriteLinks(p.Body, known)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.ID, err))
			return
		}
		if !changed {
			return
		}
		if err := f.products.UpdateBody(p.ID, fixed); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.ID, err))
			return
		}
		f.recordEvent(p.ID, "links_fixed", "")
		result.Changed++
	})
	if err != nil {
		return result, err
	}

	result.Summary = fmt.Sprintf("repaired links on %d entities", result.Changed)
	return result, nil
}

func (f *Fixer) rewriteLinks(body string, known map[string]bool) (string, bool, error) {
	if body == "" || !strings.Contains(body, "<a") {
		return body, false, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to parse body: %w", err)
	}

	changed := false
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !content.IsInternalLink(href, f.baseURL) {
			return
		}

		slug := content.LinkPathSlug(href)
		if slug == "" {
			return
		}

		if known[slug] {
			// Live target: repoint stale paths at the canonical URL.
			rel := strings.TrimPrefix(href, f.baseURL)
			if i := strings.IndexAny(rel, "?#"); i >= 0 {
				rel = rel[:i]
			}
			if strings.Trim(rel, "/") != "products/"+slug {
				sel.SetAttr("href", f.baseURL+"/products/"+slug)
				changed = true
			}
			return
		}

		// No alternative exists: unwrap the anchor, keeping its text.
		sel.ReplaceWithHtml(sel.Text())
		changed = true
	})

	if !changed {
		return body, false, nil
	}

	fixed, err := doc.Find("body").Html()
	if err != nil {
		return "", false, fmt.Errorf("failed to render body: %w", err)
	}
	return fixed, true, nil
}

// FixCanonicalURLs stamps a canonical URL onto entities that lack one.
func (f *Fixer) FixCanonicalURLs(ctx context.Context) (FixResult, error) {
	result := FixResult{Name: "canonical_urls"}

	err := f.eachProduct(ctx, func(p *database.Product) {
		if p.CanonicalURL != "" {
			return
		}
		canonical := fmt.Sprintf("%s/products/%s", strings.TrimRight(f.baseURL, "/"), p.Slug)
		if err := f.products.UpdateCanonicalURL(p.ID, canonical); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.ID, err))
			return
		}
		f.recordEvent(p.ID, "canonical_added", canonical)
		result.Changed++
	})
	if err != nil {
		return result, err
	}

	result.Summary = fmt.Sprintf("added %d canonical URLs", result.Changed)
	return result, nil
}

// FixNoindex clears the noindex flag from published entities. A published
// entity that hides itself from crawlers defeats the markup entirely.
func (f *Fixer) FixNoindex(ctx context.Context) (FixResult, error) {
	result := FixResult{Name: "noindex"}

	err := f.eachProduct(ctx, func(p *database.Product) {
		if !p.Noindex {
			return
		}
		if err := f.products.ClearNoindex(p.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.ID, err))
			return
		}
		f.recordEvent(p.ID, "noindex_removed", "")
		result.Changed++
	})
	if err != nil {
		return result, err
	}

	result.Summary = fmt.Sprintf("cleared noindex on %d entities", result.Changed)
	return result, nil
}

// FixCommerceDefaults backfills price and SKU on commerce products and
// invalidates their stored validation so the next run re-checks them.
func (f *Fixer) FixCommerceDefaults(ctx context.Context) (FixResult, error) {
	result := FixResult{Name: "commerce_defaults"}

	cfg, err := f.store.Load()
	if err != nil {
		return result, err
	}

	err = f.eachProduct(ctx, func(p *database.Product) {
		if p.PostType != "product" {
			return
		}
		if p.Price > 0 && p.SKU != "" {
			return
		}

		price := p.Price
		if price <= 0 {
			price = cfg.DefaultPrice
		}
		sku := p.SKU
		if sku == "" {
			sku = generateSKU(p.Slug)
		}
		if price == p.Price && sku == p.SKU {
			return
		}

		if err := f.products.UpdateCommerceDefaults(p.ID, price, sku); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.ID, err))
			return
		}
		if err := f.meta.Delete(p.ID, database.MetaSchemaValid); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.ID, err))
		}
		f.recordEvent(p.ID, "commerce_defaults_applied", "")
		result.Changed++
	})
	if err != nil {
		return result, err
	}

	result.Summary = fmt.Sprintf("backfilled commerce data on %d products", result.Changed)
	return result, nil
}

func (f *Fixer) eachProduct(ctx context.Context, fn func(p *database.Product)) error {
	for offset := 0; ; offset += batchSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := f.products.ListBatch(offset, batchSize)
		if err != nil {
			return fmt.Errorf("failed to load product batch: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}

		for i := range batch {
			fn(&batch[i])
		}

		if len(batch) < batchSize {
			return nil
		}
	}
}

func (f *Fixer) recordEvent(entityID, eventType, details string) {
	if err := f.events.Insert(entityID, eventType, details); err != nil {
		slog.Warn("Failed to record optimization event", "entity", entityID, "type", eventType, "error", err)
	}
}

func generateSKU(slug string) string {
	cleaned := strings.ToUpper(strings.ReplaceAll(slug, "-", ""))
	if len(cleaned) > 12 {
		cleaned = cleaned[:12]
	}
	return "SKU-" + cleaned
}
