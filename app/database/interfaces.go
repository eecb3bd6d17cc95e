package database

import (
	"time"
)

// Entity metadata keys written by the optimization components.
const (
	MetaSchemaAdded  = "schema_added"
	MetaSchemaValid  = "schema_valid"
	MetaSchemaErrors = "schema_errors"
	MetaSchemaScore  = "schema_score"
	MetaSEOScore     = "seo_score"
	MetaAISummary    = "ai_summary"
	MetaKeywords     = "keywords"
)

// PageRef is a lightweight product reference for sitemap generation and
// link resolution.
type PageRef struct {
	ID        string
	Slug      string
	UpdatedAt time.Time
}

// EntityScore pairs a product with an integer metadata value, ordered
// descending by value.
type EntityScore struct {
	EntityID string
	Title    string
	Slug     string
	Value    int
}

type ProductRepository interface {
	GetByID(id string) (*Product, error)
	GetBySlug(slug string) (*Product, error)
	GetSample() (*Product, error)
	ListBatch(offset, limit int) ([]Product, error)
	ListPublishedRefs() ([]PageRef, error)
	CountAll() (int, error)
	CountPublished() (int, error)

	Upsert(p Product) (string, bool, error)
	UpdateBody(id, body string) error
	UpdateMetaDescription(id, description string) error
	UpdateCanonicalURL(id, canonicalURL string) error
	ClearNoindex(id string) error
	UpdateCommerceDefaults(id string, price float64, sku string) error
}

type VariantRepository interface {
	ListByProduct(productID string) ([]Variant, error)
}

type ReviewRepository interface {
	ListApproved(productID string, limit int) ([]Review, error)
	CountApproved(productID string) (int, error)
}

type MetaRepository interface {
	Get(entityID, key string) (string, bool, error)
	Set(entityID, key, value string) error
	Delete(entityID, key string) error

	CountWithValue(key, value string) (int, error)
	EntityIDsMissing(key string, limit int) ([]string, error)
	AverageInt(key string) (float64, error)
	TopEntitiesByInt(key string, limit int) ([]EntityScore, error)
	ListWithKey(key string, limit int) ([]MetaEntry, error)
}

type SettingsRepository interface {
	GetAll() (map[string]string, error)
	Set(key, value string) error
	SetMany(values map[string]string) error
}

type EventRepository interface {
	Insert(entityID, eventType, details string) error
	ListSince(since time.Time, limit int) ([]Event, error)
	CountByTypeSince(since time.Time) (map[string]int, error)
}
