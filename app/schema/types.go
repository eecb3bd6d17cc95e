package schema

import (
	"github.com/schemapress/schemapress/app/database"
	"github.com/schemapress/schemapress/app/settings"
)

// Document is a schema.org node tree ready for JSON-LD serialization.
// Documents are transient: built per render and never persisted.
type Document map[string]any

// Input carries everything the builder reads. Meta holds entity metadata
// used for SKU fallbacks; Variants and Reviews come from the catalog store.
type Input struct {
	Product  *database.Product
	Variants []database.Variant
	Reviews  []database.Review
	Meta     map[string]string
	BaseURL  string
	Settings *settings.Settings
}

// Context is handed to every transform hook alongside the document.
type Context struct {
	Product  *database.Product
	Settings *settings.Settings
}

// Transform mutates or replaces a document. Returning nil keeps the input
// document unchanged.
type Transform func(Document, *Context) Document

// Stage identifies the extension point a transform is registered for.
type Stage string

const (
	StageOffers   Stage = "offers"
	StageRating   Stage = "rating"
	StageReview   Stage = "review"
	StageDocument Stage = "document"
)

// Hooks is the ordered, synchronous extension-point registry. Transforms run
// in registration order; each receives the output of the previous one.
type Hooks struct {
	transforms map[Stage][]Transform
}

func NewHooks() *Hooks {
	return &Hooks{transforms: make(map[Stage][]Transform)}
}

func (h *Hooks) Register(stage Stage, fn Transform) {
	h.transforms[stage] = append(h.transforms[stage], fn)
}

func (h *Hooks) apply(stage Stage, doc Document, ctx *Context) Document {
	if h == nil {
		return doc
	}
	for _, fn := range h.transforms[stage] {
		if out := fn(doc, ctx); out != nil {
			doc = out
		}
	}
	return doc
}

// ValidationResult reports the outcome of validating one document.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Passed   []string `json:"passed"`
	Score    int      `json:"score"`
}
