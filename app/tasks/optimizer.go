package tasks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/schemapress/schemapress/app/aisearch"
	"github.com/schemapress/schemapress/app/content"
	"github.com/schemapress/schemapress/app/database"
	"github.com/schemapress/schemapress/app/faq"
	"github.com/schemapress/schemapress/app/keywords"
	"github.com/schemapress/schemapress/app/schema"
	"github.com/schemapress/schemapress/app/seo"
	"github.com/schemapress/schemapress/app/settings"
)

const optimizeBatchSize = 200

// OptimizeReport summarizes one site-wide optimization run.
type OptimizeReport struct {
	Processed       int      `json:"processed"`
	SchemaGenerated int      `json:"schema_generated"`
	SchemaValid     int      `json:"schema_valid"`
	FAQPages        int      `json:"faq_pages"`
	AvgSEOScore     float64  `json:"avg_seo_score"`
	Errors          []string `json:"errors,omitempty"`
}

// SiteOptimizer runs the full pipeline over every published entity:
// keyword extraction, markup generation and validation, SEO scoring, AI
// search analysis, and FAQ detection. Per-entity failures are recorded and
// the run continues.
type SiteOptimizer struct {
	products database.ProductRepository
	meta     database.MetaRepository
	events   database.EventRepository
	schema   *schema.Service
	store    *settings.Store
	baseURL  string
}

func NewSiteOptimizer(products database.ProductRepository, meta database.MetaRepository,
	events database.EventRepository, schemaService *schema.Service,
	store *settings.Store, baseURL string) *SiteOptimizer {
	return &SiteOptimizer{
		products: products,
		meta:     meta,
		events:   events,
		schema:   schemaService,
		store:    store,
		baseURL:  baseURL,
	}
}

func (o *SiteOptimizer) Run(ctx context.Context) (*OptimizeReport, error) {
	cfg, err := o.store.Load()
	if err != nil {
		return nil, err
	}

	report := &OptimizeReport{}
	scoreSum := 0

	for offset := 0; ; offset += optimizeBatchSize {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		batch, err := o.products.ListBatch(offset, optimizeBatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load product batch: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			p := &batch[i]
			report.Processed++

			total, err := o.optimizeEntity(p, cfg, report)
			if err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", p.ID, err))
				continue
			}
			scoreSum += total
		}

		if len(batch) < optimizeBatchSize {
			break
		}
	}

	if report.Processed > 0 {
		report.AvgSEOScore = float64(scoreSum) / float64(report.Processed)
	}

	return report, nil
}

// OptimizeEntities runs the pipeline for an explicit set of entities,
// typically on behalf of an API request.
func (o *SiteOptimizer) OptimizeEntities(ctx context.Context, entityIDs []string) (*OptimizeReport, error) {
	cfg, err := o.store.Load()
	if err != nil {
		return nil, err
	}

	report := &OptimizeReport{}
	scoreSum := 0

	for _, id := range entityIDs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		p, err := o.products.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %q: %w", id, err)
		}
		if p == nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: not found", id))
			continue
		}

		report.Processed++
		total, err := o.optimizeEntity(p, cfg, report)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		scoreSum += total
	}

	if report.Processed > 0 {
		report.AvgSEOScore = float64(scoreSum) / float64(report.Processed)
	}

	return report, nil
}

// optimizeEntity runs every pipeline stage for one entity and returns its
// SEO score.
func (o *SiteOptimizer) optimizeEntity(p *database.Product, cfg *settings.Settings, report *OptimizeReport) (int, error) {
	plain := content.ExtractMainText(p.Body)

	kws := keywords.Extract(p.Title + " " + p.Body)
	if len(kws) > 0 {
		if err := o.meta.Set(p.ID, database.MetaKeywords, strings.Join(kws, ",")); err != nil {
			return 0, fmt.Errorf("failed to store keywords: %w", err)
		}
	}

	_, result, err := o.schema.ValidateProductWithSettings(p, cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to generate markup: %w", err)
	}
	if err := o.meta.Set(p.ID, database.MetaSchemaAdded, "1"); err != nil {
		return 0, fmt.Errorf("failed to flag markup: %w", err)
	}
	report.SchemaGenerated++
	if result.Valid {
		report.SchemaValid++
	}

	primary := ""
	if len(kws) > 0 {
		primary = kws[0]
	}
	breakdown := seo.Score(seo.Input{
		Title:           p.Title,
		Body:            plain,
		MetaDescription: p.MetaDescription,
		PrimaryKeyword:  primary,
		HasImage:        p.ImageURL != "",
		InternalLinks:   len(content.InternalLinks(p.Body, o.baseURL)),
		SchemaValid:     result.Valid,
	})
	if err := o.meta.Set(p.ID, database.MetaSEOScore, strconv.Itoa(breakdown.Total)); err != nil {
		return 0, fmt.Errorf("failed to store SEO score: %w", err)
	}

	ai := aisearch.Analyze(p.Title, p.Body, kws, true)
	if ai.Summary != "" {
		if err := o.meta.Set(p.ID, database.MetaAISummary, ai.Summary); err != nil {
			return 0, fmt.Errorf("failed to store summary: %w", err)
		}
	}

	if cfg.EnableFAQSchema && faq.IsFAQPage(p.Title, p.Slug, plain) {
		if entries := faq.ExtractFAQs(p.Body); len(entries) > 0 {
			report.FAQPages++
			o.recordEvent(p.ID, "faq_detected", strconv.Itoa(len(entries))+" entries")
		}
	}

	o.recordEvent(p.ID, "optimized", "")
	return breakdown.Total, nil
}

func (o *SiteOptimizer) recordEvent(entityID, eventType, details string) {
	// Event history is informational; a failed insert must not fail the run.
	_ = o.events.Insert(entityID, eventType, details)
}
