package api

import (
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schemapress/schemapress/app/aisearch"
	"github.com/schemapress/schemapress/app/analytics"
	"github.com/schemapress/schemapress/app/content"
	"github.com/schemapress/schemapress/app/database"
	"github.com/schemapress/schemapress/app/faq"
	"github.com/schemapress/schemapress/app/fixer"
	"github.com/schemapress/schemapress/app/keywords"
	"github.com/schemapress/schemapress/app/report"
	"github.com/schemapress/schemapress/app/schema"
	"github.com/schemapress/schemapress/app/seo"
	"github.com/schemapress/schemapress/app/settings"
	"github.com/schemapress/schemapress/app/sitemap"
	"github.com/schemapress/schemapress/app/tasks"
)

const exportBatchSize = 200

func NewHandler(products database.ProductRepository, meta database.MetaRepository,
	events database.EventRepository, schemaService *schema.Service,
	analyticsService *analytics.Service, optimizer *tasks.SiteOptimizer,
	f *fixer.Fixer, sitemapGenerator *sitemap.Generator, reportSender *report.Sender,
	store *settings.Store, scheduler tasks.TaskSchedulerInterface, baseURL string) *Handler {
	return &Handler{
		products:  products,
		meta:      meta,
		events:    events,
		schema:    schemaService,
		analytics: analyticsService,
		optimizer: optimizer,
		fixer:     f,
		sitemap:   sitemapGenerator,
		report:    reportSender,
		store:     store,
		scheduler: scheduler,
		baseURL:   baseURL,
	}
}

// GetEmbed serves the head fragment for one published entity: the JSON-LD
// script tags, preceded for commerce entities by title and description meta
// tags rendered from the configured templates.
func (h *Handler) GetEmbed(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	p, err := h.products.GetBySlug(slug)
	if err != nil {
		slog.Error("Database error", "operation", "get_product", "slug", slug, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if p == nil || p.Status != "published" {
		c.Status(http.StatusNotFound)
		return
	}

	cfg, err := h.store.Load()
	if err != nil {
		slog.Error("Settings error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	doc, err := h.schema.BuildWithSettings(p, cfg)
	if err != nil {
		slog.Error("Markup generation error", "slug", slug, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	var tags []string
	if p.PostType == "product" {
		values := cfg.MetaTagValues(p)
		title := settings.RenderTemplate(cfg.TitleTemplate, values)
		tags = append(tags, "<title>"+html.EscapeString(title)+"</title>")

		description := p.MetaDescription
		if description == "" {
			description = settings.RenderTemplate(cfg.MetaDescriptionTemplate, values)
		}
		tags = append(tags, `<meta name="description" content="`+html.EscapeString(description)+`">`)
	}

	tag, err := schema.ScriptTag(doc)
	if err != nil {
		slog.Error("Serialization error", "slug", slug, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	tags = append(tags, tag)

	if cfg.EnableBreadcrumbs {
		if crumbTag, err := schema.ScriptTag(schema.Breadcrumbs(p, cfg, h.baseURL)); err == nil {
			tags = append(tags, crumbTag)
		}
	}

	if cfg.EnableFAQSchema && faq.IsFAQPage(p.Title, p.Slug, content.StripMarkup(p.Body)) {
		if faqDoc := schema.FAQPage(faq.ExtractFAQs(p.Body)); faqDoc != nil {
			if faqTag, err := schema.ScriptTag(faqDoc); err == nil {
				tags = append(tags, faqTag)
			}
		}
	}

	if err := h.meta.Set(p.ID, database.MetaSchemaAdded, "1"); err != nil {
		slog.Warn("Failed to flag markup", "entity", p.ID, "error", err)
	}
	_ = h.events.Insert(p.ID, "embedded", "")

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "public, max-age=300")
	c.String(http.StatusOK, strings.Join(tags, "\n"))
}

// GetOrganization serves the site-level Organization document.
func (h *Handler) GetOrganization(c *gin.Context) {
	cfg, err := h.store.Load()
	if err != nil {
		slog.Error("Settings error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if !cfg.EnableOrganization {
		c.Status(http.StatusNotFound)
		return
	}

	serialized, err := schema.Serialize(schema.Organization(cfg, h.baseURL))
	if err != nil {
		slog.Error("Serialization error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/ld+json; charset=utf-8")
	c.String(http.StatusOK, serialized)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	total, err := h.products.CountAll()
	if err != nil {
		health["status"] = "error"
		health["error"] = "database unavailable"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	health["status"] = "ok"
	health["products"] = total
	c.JSON(http.StatusOK, health)
}

// TestSchema builds and validates markup for one entity without persisting
// anything. With no entity given, an arbitrary published product is used.
func (h *Handler) TestSchema(c *gin.Context) {
	var req validateRequest
	_ = c.ShouldBindJSON(&req)

	var p *database.Product
	var err error
	if req.EntityID != "" {
		p, err = h.products.GetByID(req.EntityID)
	} else {
		p, err = h.products.GetSample()
	}
	if err != nil {
		slog.Error("Database error", "operation", "test_schema", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no matching published product found"})
		return
	}

	doc, err := h.schema.Build(p)
	if err != nil {
		slog.Error("Markup generation error", "entity", p.ID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	result := schema.Validate(doc)
	tag, err := schema.ScriptTag(doc)
	if err != nil {
		slog.Error("Serialization error", "entity", p.ID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entity_id":  p.ID,
		"title":      p.Title,
		"schema":     doc,
		"validation": result,
		"script_tag": tag,
	})
}

// ValidateSchema validates one entity when an ID is given, otherwise the
// whole catalog. Results are persisted as entity metadata either way.
func (h *Handler) ValidateSchema(c *gin.Context) {
	var req validateRequest
	_ = c.ShouldBindJSON(&req)

	if req.EntityID != "" {
		p, err := h.products.GetByID(req.EntityID)
		if err != nil {
			slog.Error("Database error", "operation", "validate_schema", "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		_, result, err := h.schema.ValidateProduct(p)
		if err != nil {
			slog.Error("Validation error", "entity", p.ID, "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}

		c.JSON(http.StatusOK, gin.H{"entity_id": p.ID, "validation": result})
		return
	}

	catalogReport, err := h.schema.ValidateCatalog(c.Request.Context())
	if err != nil {
		slog.Error("Catalog validation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, catalogReport)
}

// AnalyzeContent runs the content pipeline on submitted text without
// touching the catalog: keywords, SEO score, AI search report, and FAQ
// detection.
func (h *Handler) AnalyzeContent(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plain := content.ExtractMainText(req.Body)
	kws := keywords.Extract(req.Title + " " + req.Body)
	primary := ""
	if len(kws) > 0 {
		primary = kws[0]
	}

	seoInput := seo.Input{
		Title:           req.Title,
		Body:            plain,
		MetaDescription: req.MetaDescription,
		PrimaryKeyword:  primary,
		HasImage:        req.HasImage,
		InternalLinks:   len(content.InternalLinks(req.Body, h.baseURL)),
		SchemaValid:     false,
	}
	breakdown := seo.Score(seoInput)

	isFAQ := faq.IsFAQPage(req.Title, req.Slug, plain)
	var entries []faq.Entry
	if isFAQ {
		entries = faq.ExtractFAQs(req.Body)
	}

	density := seo.KeywordDensity(plain, primary)

	c.JSON(http.StatusOK, gin.H{
		"keywords":              kws,
		"primary_keyword":       primary,
		"keyword_density":       density,
		"word_count":            content.WordCount(plain),
		"readability":           seo.Readability(plain),
		"seo":                   breakdown,
		"content_suggestions":   seo.Suggestions(seoInput, breakdown),
		"competitor_comparison": seo.CompareBaseline(seoInput, breakdown, density),
		"ai_search":             aisearch.Analyze(req.Title, req.Body, kws, false),
		"faq": gin.H{
			"is_faq_page": isFAQ,
			"entries":     entries,
		},
	})
}

// CompetitorAnalysis measures one stored entity against the fixed baseline
// targets a well-optimized page is expected to hit.
func (h *Handler) CompetitorAnalysis(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EntityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_id is required"})
		return
	}

	p, err := h.products.GetByID(req.EntityID)
	if err != nil {
		slog.Error("Database error", "operation", "get_product", "entity_id", req.EntityID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	}

	plain := content.ExtractMainText(p.Body)
	kws := keywords.Extract(p.Title + " " + p.Body)
	primary := ""
	if len(kws) > 0 {
		primary = kws[0]
	}

	schemaValid, _, err := h.meta.Get(p.ID, database.MetaSchemaValid)
	if err != nil {
		slog.Error("Database error", "operation", "get_meta", "entity_id", p.ID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	in := seo.Input{
		Title:           p.Title,
		Body:            plain,
		MetaDescription: p.MetaDescription,
		PrimaryKeyword:  primary,
		HasImage:        p.ImageURL != "",
		InternalLinks:   len(content.InternalLinks(p.Body, h.baseURL)),
		SchemaValid:     schemaValid == "1",
	}
	breakdown := seo.Score(in)
	density := seo.KeywordDensity(plain, primary)

	c.JSON(http.StatusOK, gin.H{
		"entity_id":             p.ID,
		"seo":                   breakdown,
		"keyword_density":       density,
		"competitor_comparison": seo.CompareBaseline(in, breakdown, density),
		"content_suggestions":   seo.Suggestions(in, breakdown),
	})
}

func (h *Handler) GetAnalytics(c *gin.Context) {
	dashboard, err := h.analytics.BuildDashboard()
	if err != nil {
		slog.Error("Analytics error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// OptimizeSite schedules a full optimization run in the background.
func (h *Handler) OptimizeSite(c *gin.Context) {
	task := tasks.NewOptimizeSiteTask(h.optimizer)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue OptimizeSiteTask", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "task queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "scheduled", "task_id": task.GetID()})
}

// BulkOptimize optimizes an explicit set of entities synchronously.
func (h *Handler) BulkOptimize(c *gin.Context) {
	var req bulkOptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.EntityIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_ids must not be empty"})
		return
	}

	optimizeReport, err := h.optimizer.OptimizeEntities(c.Request.Context(), req.EntityIDs)
	if err != nil {
		slog.Error("Bulk optimization error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, optimizeReport)
}

func (h *Handler) FixErrors(c *gin.Context) {
	task := tasks.NewFixErrorsTask(h.fixer)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue FixErrorsTask", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "task queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "scheduled", "task_id": task.GetID()})
}

func (h *Handler) GenerateSitemap(c *gin.Context) {
	task := tasks.NewGenerateSitemapTask(h.sitemap, h.store)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue GenerateSitemapTask", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "task queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "scheduled", "task_id": task.GetID()})
}

func (h *Handler) SendReport(c *gin.Context) {
	task := tasks.NewWeeklyReportTask(h.report)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue WeeklyReportTask", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "task queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "scheduled", "task_id": task.GetID()})
}

// ExportData streams the optimization state of every published entity.
func (h *Handler) ExportData(c *gin.Context) {
	type exportRow struct {
		EntityID    string `json:"entity_id"`
		Slug        string `json:"slug"`
		Title       string `json:"title"`
		SchemaValid string `json:"schema_valid,omitempty"`
		SchemaScore string `json:"schema_score,omitempty"`
		SEOScore    string `json:"seo_score,omitempty"`
		Keywords    string `json:"keywords,omitempty"`
	}

	var rows []exportRow
	for offset := 0; ; offset += exportBatchSize {
		batch, err := h.products.ListBatch(offset, exportBatchSize)
		if err != nil {
			slog.Error("Database error", "operation", "export_data", "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			p := &batch[i]
			row := exportRow{EntityID: p.ID, Slug: p.Slug, Title: p.Title}
			row.SchemaValid, _, _ = h.meta.Get(p.ID, database.MetaSchemaValid)
			row.SchemaScore, _, _ = h.meta.Get(p.ID, database.MetaSchemaScore)
			row.SEOScore, _, _ = h.meta.Get(p.ID, database.MetaSEOScore)
			row.Keywords, _, _ = h.meta.Get(p.ID, database.MetaKeywords)
			rows = append(rows, row)
		}

		if len(batch) < exportBatchSize {
			break
		}
	}

	c.Header("Content-Disposition", `attachment; filename="schemapress-export.json"`)
	c.JSON(http.StatusOK, gin.H{
		"exported_at": time.Now().UTC().Format(time.RFC3339),
		"count":       len(rows),
		"entities":    rows,
	})
}

func (h *Handler) GetSettings(c *gin.Context) {
	values, err := h.store.All()
	if err != nil {
		slog.Error("Settings error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": values})
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for key, value := range req.Values {
		if err := h.store.Set(key, value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"updated": len(req.Values)})
}
