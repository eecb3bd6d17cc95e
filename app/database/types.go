package database

import (
	"time"
)

type Product struct {
	ID              string // Database UUID
	Source          string // Catalog source name the product was imported from
	Slug            string
	SKU             string
	Title           string
	Body            string // HTML body as delivered by the source
	Excerpt         string
	Status          string // published, draft
	PostType        string // product, page, article
	Price           float64
	Currency        string
	StockStatus     string // instock, outofstock, onbackorder
	SaleStart       *time.Time
	SaleEnd         *time.Time
	ImageURL        string
	GalleryURLs     []string
	Category        string
	Tags            []string
	Language        string // ISO 639-1 code, detected at import when absent
	CanonicalURL    string
	MetaDescription string
	Noindex         bool
	RatingValue     float64 // Average of approved review ratings
	RatingCount     int
	ContentHash     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Variant struct {
	ID          string
	ProductID   string
	SKU         string
	Name        string
	Price       float64
	StockStatus string
	CreatedAt   time.Time
}

type Review struct {
	ID          string
	ProductID   string
	Author      string
	Rating      int
	Body        string
	Approved    bool
	PublishedAt time.Time
}

type MetaEntry struct {
	EntityID  string
	Key       string
	Value     string
	UpdatedAt time.Time
}

type Event struct {
	ID        string
	EntityID  string
	Type      string
	Details   string
	CreatedAt time.Time
}
