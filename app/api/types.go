package api

import (
	"github.com/schemapress/schemapress/app/analytics"
	"github.com/schemapress/schemapress/app/database"
	"github.com/schemapress/schemapress/app/fixer"
	"github.com/schemapress/schemapress/app/report"
	"github.com/schemapress/schemapress/app/schema"
	"github.com/schemapress/schemapress/app/settings"
	"github.com/schemapress/schemapress/app/sitemap"
	"github.com/schemapress/schemapress/app/tasks"
)

type Handler struct {
	products  database.ProductRepository
	meta      database.MetaRepository
	events    database.EventRepository
	schema    *schema.Service
	analytics *analytics.Service
	optimizer *tasks.SiteOptimizer
	fixer     *fixer.Fixer
	sitemap   *sitemap.Generator
	report    *report.Sender
	store     *settings.Store
	scheduler tasks.TaskSchedulerInterface
	baseURL   string
}

type validateRequest struct {
	EntityID string `json:"entity_id"`
}

type analyzeRequest struct {
	Title           string `json:"title" binding:"required"`
	Body            string `json:"body" binding:"required"`
	Slug            string `json:"slug"`
	MetaDescription string `json:"meta_description"`
	HasImage        bool   `json:"has_image"`
}

type bulkOptimizeRequest struct {
	EntityIDs []string `json:"entity_ids" binding:"required"`
}

type settingsRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}
