package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ ProductRepository = (*ProductRepo)(nil)

type ProductRepo struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, source, slug, sku, title, body, excerpt, status, post_type,
	price, currency, stock_status, sale_start, sale_end, image_url, gallery_urls,
	category, tags, language, canonical_url, meta_description, noindex,
	rating_value, rating_count, content_hash, created_at, updated_at`

func (r *ProductRepo) scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	var gallery, tags string
	err := row.Scan(
		&p.ID, &p.Source, &p.Slug, &p.SKU, &p.Title, &p.Body, &p.Excerpt, &p.Status,
		&p.PostType, &p.Price, &p.Currency, &p.StockStatus, &p.SaleStart, &p.SaleEnd,
		&p.ImageURL, &gallery, &p.Category, &tags, &p.Language, &p.CanonicalURL,
		&p.MetaDescription, &p.Noindex, &p.RatingValue, &p.RatingCount,
		&p.ContentHash, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(gallery), &p.GalleryURLs); err != nil {
		p.GalleryURLs = nil
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		p.Tags = nil
	}

	return &p, nil
}

func (r *ProductRepo) GetByID(id string) (*Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = ?`, id)

	p, err := r.scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}

	return p, nil
}

func (r *ProductRepo) GetBySlug(slug string) (*Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE slug = ?`, slug)

	p, err := r.scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}

	return p, nil
}

// GetSample returns an arbitrary published commerce product, used by the
// test-schema admin action.
func (r *ProductRepo) GetSample() (*Product, error) {
	row := r.db.QueryRow(`
		SELECT ` + productColumns + `
		FROM products
		WHERE status = 'published' AND post_type = 'product'
		ORDER BY created_at
		LIMIT 1
	`)

	p, err := r.scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sample product: %w", err)
	}

	return p, nil
}

// ListBatch returns published products in stable order for paged bulk
// operations.
func (r *ProductRepo) ListBatch(offset, limit int) ([]Product, error) {
	rows, err := r.db.Query(`
		SELECT `+productColumns+`
		FROM products
		WHERE status = 'published'
		ORDER BY created_at, id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

func (r *ProductRepo) ListPublishedRefs() ([]PageRef, error) {
	rows, err := r.db.Query(`
		SELECT id, slug, updated_at
		FROM products
		WHERE status = 'published' AND noindex = 0
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list product refs: %w", err)
	}
	defer rows.Close()

	var refs []PageRef
	for rows.Next() {
		var ref PageRef
		if err := rows.Scan(&ref.ID, &ref.Slug, &ref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product ref: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product refs: %w", err)
	}

	return refs, nil
}

func (r *ProductRepo) CountAll() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get product count: %w", err)
	}
	return count, nil
}

func (r *ProductRepo) CountPublished() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM products WHERE status = 'published'").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get published product count: %w", err)
	}
	return count, nil
}

// Upsert inserts a product or updates the existing row with the same slug.
// Returns the database ID and whether a new row was created.
func (r *ProductRepo) Upsert(p Product) (string, bool, error) {
	existing, err := r.GetBySlug(p.Slug)
	if err != nil {
		return "", false, fmt.Errorf("failed to check existing product: %w", err)
	}

	gallery, err := json.Marshal(p.GalleryURLs)
	if err != nil {
		return "", false, fmt.Errorf("failed to encode gallery URLs: %w", err)
	}
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return "", false, fmt.Errorf("failed to encode tags: %w", err)
	}

	now := time.Now().UTC()

	if existing != nil {
		_, err = r.db.Exec(`
			UPDATE products
			SET source = ?, sku = ?, title = ?, body = ?, excerpt = ?, status = ?,
			    post_type = ?, price = ?, currency = ?, stock_status = ?,
			    sale_start = ?, sale_end = ?, image_url = ?, gallery_urls = ?,
			    category = ?, tags = ?, language = ?, content_hash = ?, updated_at = ?
			WHERE id = ?
		`, p.Source, p.SKU, p.Title, p.Body, p.Excerpt, p.Status, p.PostType,
			p.Price, p.Currency, p.StockStatus, p.SaleStart, p.SaleEnd,
			p.ImageURL, string(gallery), p.Category, string(tags), p.Language,
			p.ContentHash, now, existing.ID)
		if err != nil {
			return "", false, fmt.Errorf("failed to update product: %w", err)
		}
		return existing.ID, false, nil
	}

	id := uuid.NewString()
	_, err = r.db.Exec(`
		INSERT INTO products (
			id, source, slug, sku, title, body, excerpt, status, post_type,
			price, currency, stock_status, sale_start, sale_end, image_url,
			gallery_urls, category, tags, language, content_hash, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, p.Source, p.Slug, p.SKU, p.Title, p.Body, p.Excerpt, p.Status, p.PostType,
		p.Price, p.Currency, p.StockStatus, p.SaleStart, p.SaleEnd, p.ImageURL,
		string(gallery), p.Category, string(tags), p.Language, p.ContentHash, now, now)
	if err != nil {
		return "", false, fmt.Errorf("failed to insert product: %w", err)
	}

	return id, true, nil
}

func (r *ProductRepo) UpdateBody(id, body string) error {
	_, err := r.db.Exec(`
		UPDATE products SET body = ?, updated_at = ? WHERE id = ?
	`, body, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update product body: %w", err)
	}
	return nil
}

func (r *ProductRepo) UpdateMetaDescription(id, description string) error {
	_, err := r.db.Exec(`
		UPDATE products SET meta_description = ?, updated_at = ? WHERE id = ?
	`, description, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update meta description: %w", err)
	}
	return nil
}

func (r *ProductRepo) UpdateCanonicalURL(id, canonicalURL string) error {
	_, err := r.db.Exec(`
		UPDATE products SET canonical_url = ?, updated_at = ? WHERE id = ?
	`, canonicalURL, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update canonical URL: %w", err)
	}
	return nil
}

func (r *ProductRepo) ClearNoindex(id string) error {
	_, err := r.db.Exec(`
		UPDATE products SET noindex = 0, updated_at = ? WHERE id = ?
	`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to clear noindex: %w", err)
	}
	return nil
}

func (r *ProductRepo) UpdateCommerceDefaults(id string, price float64, sku string) error {
	_, err := r.db.Exec(`
		UPDATE products SET price = ?, sku = ?, updated_at = ? WHERE id = ?
	`, price, sku, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update commerce defaults: %w", err)
	}
	return nil
}
