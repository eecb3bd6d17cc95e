package database

import (
	"fmt"
)

var _ ReviewRepository = (*ReviewRepo)(nil)
var _ VariantRepository = (*VariantRepo)(nil)

type ReviewRepo struct {
	db *DB
}

func NewReviewRepository(db *DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) ListApproved(productID string, limit int) ([]Review, error) {
	rows, err := r.db.Query(`
		SELECT id, product_id, author, rating, body, approved, published_at
		FROM reviews
		WHERE product_id = ? AND approved = 1
		ORDER BY published_at DESC
		LIMIT ?
	`, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.Author, &rev.Rating,
			&rev.Body, &rev.Approved, &rev.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepo) CountApproved(productID string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM reviews WHERE product_id = ? AND approved = 1
	`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

type VariantRepo struct {
	db *DB
}

func NewVariantRepository(db *DB) *VariantRepo {
	return &VariantRepo{db: db}
}

func (r *VariantRepo) ListByProduct(productID string) ([]Variant, error) {
	rows, err := r.db.Query(`
		SELECT id, product_id, sku, name, price, stock_status, created_at
		FROM variants
		WHERE product_id = ?
		ORDER BY created_at, id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	var variants []Variant
	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price,
			&v.StockStatus, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan variant row: %w", err)
		}
		variants = append(variants, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variant rows: %w", err)
	}

	return variants, nil
}
