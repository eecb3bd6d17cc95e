package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/schemapress/schemapress/app/database"
	"github.com/schemapress/schemapress/app/settings"
)

const validationBatchSize = 200

// EntityValidation is the per-entity detail row of a catalog-wide
// validation run.
type EntityValidation struct {
	EntityID string   `json:"entity_id"`
	Title    string   `json:"title"`
	Valid    bool     `json:"valid"`
	Score    int      `json:"score"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type CatalogReport struct {
	Total        int                `json:"total"`
	Valid        int                `json:"valid"`
	Invalid      int                `json:"invalid"`
	WithWarnings int                `json:"with_warnings"`
	Details      []EntityValidation `json:"details"`
}

// Service wires the pure builder and validator to the catalog store: it
// resolves variants, reviews, and metadata for a product, and persists
// validation outcomes as entity metadata.
type Service struct {
	builder  *Builder
	products database.ProductRepository
	variants database.VariantRepository
	reviews  database.ReviewRepository
	meta     database.MetaRepository
	store    *settings.Store
	baseURL  string
}

func NewService(builder *Builder, products database.ProductRepository,
	variants database.VariantRepository, reviews database.ReviewRepository,
	meta database.MetaRepository, store *settings.Store, baseURL string) *Service {
	return &Service{
		builder:  builder,
		products: products,
		variants: variants,
		reviews:  reviews,
		meta:     meta,
		store:    store,
		baseURL:  baseURL,
	}
}

// Build assembles the document for one product, loading settings afresh and
// resolving the product's variants, reviews, and SKU fallback metadata.
func (s *Service) Build(p *database.Product) (Document, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return s.BuildWithSettings(p, cfg)
}

func (s *Service) BuildWithSettings(p *database.Product, cfg *settings.Settings) (Document, error) {
	variants, err := s.variants.ListByProduct(p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}

	reviews, err := s.reviews.ListApproved(p.ID, maxReviews)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	meta := make(map[string]string)
	for _, key := range skuMetaKeys {
		if v, ok, err := s.meta.Get(p.ID, key); err == nil && ok {
			meta[key] = v
		}
	}

	return s.builder.Run(Input{
		Product:  p,
		Variants: variants,
		Reviews:  reviews,
		Meta:     meta,
		BaseURL:  s.baseURL,
		Settings: cfg,
	}), nil
}

// ValidateProduct builds and validates one product and persists the
// outcome: valid flag, serialized error list, and score.
func (s *Service) ValidateProduct(p *database.Product) (Document, ValidationResult, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return nil, ValidationResult{}, err
	}
	return s.ValidateProductWithSettings(p, cfg)
}

func (s *Service) ValidateProductWithSettings(p *database.Product, cfg *settings.Settings) (Document, ValidationResult, error) {
	doc, err := s.BuildWithSettings(p, cfg)
	if err != nil {
		return nil, ValidationResult{}, err
	}

	result := Validate(doc)
	if err := s.persistResult(p.ID, result); err != nil {
		return nil, ValidationResult{}, err
	}

	return doc, result, nil
}

func (s *Service) persistResult(entityID string, result ValidationResult) error {
	valid := "0"
	if result.Valid {
		valid = "1"
	}
	if err := s.meta.Set(entityID, database.MetaSchemaValid, valid); err != nil {
		return err
	}

	errorList, err := json.Marshal(result.Errors)
	if err != nil {
		return fmt.Errorf("failed to encode error list: %w", err)
	}
	if err := s.meta.Set(entityID, database.MetaSchemaErrors, string(errorList)); err != nil {
		return err
	}

	return s.meta.Set(entityID, database.MetaSchemaScore, strconv.Itoa(result.Score))
}

// ValidateCatalog validates every published product in batches and returns
// the aggregate report. Per-entity failures are recorded and do not abort
// the run.
func (s *Service) ValidateCatalog(ctx context.Context) (*CatalogReport, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	report := &CatalogReport{}

	for offset := 0; ; offset += validationBatchSize {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		batch, err := s.products.ListBatch(offset, validationBatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load product batch: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			p := &batch[i]
			report.Total++

			doc, err := s.BuildWithSettings(p, cfg)
			if err != nil {
				report.Invalid++
				report.Details = append(report.Details, EntityValidation{
					EntityID: p.ID,
					Title:    p.Title,
					Valid:    false,
					Errors:   []string{err.Error()},
				})
				continue
			}

			result := Validate(doc)
			if err := s.persistResult(p.ID, result); err != nil {
				return nil, err
			}

			if result.Valid {
				report.Valid++
			} else {
				report.Invalid++
			}
			if len(result.Warnings) > 0 {
				report.WithWarnings++
			}

			report.Details = append(report.Details, EntityValidation{
				EntityID: p.ID,
				Title:    p.Title,
				Valid:    result.Valid,
				Score:    result.Score,
				Errors:   result.Errors,
				Warnings: result.Warnings,
			})
		}

		if len(batch) < validationBatchSize {
			break
		}
	}

	return report, nil
}
