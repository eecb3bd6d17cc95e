package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ MetaRepository = (*MetaRepo)(nil)

type MetaRepo struct {
	db *DB
}

func NewMetaRepository(db *DB) *MetaRepo {
	return &MetaRepo{db: db}
}

func (r *MetaRepo) Get(entityID, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`
		SELECT meta_value FROM entity_meta WHERE entity_id = ? AND meta_key = ?
	`, entityID, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get entity meta: %w", err)
	}

	return value, true, nil
}

func (r *MetaRepo) Set(entityID, key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO entity_meta (entity_id, meta_key, meta_value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (entity_id, meta_key) DO UPDATE SET
			meta_value = excluded.meta_value,
			updated_at = excluded.updated_at
	`, entityID, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set entity meta: %w", err)
	}
	return nil
}

func (r *MetaRepo) Delete(entityID, key string) error {
	_, err := r.db.Exec(`
		DELETE FROM entity_meta WHERE entity_id = ? AND meta_key = ?
	`, entityID, key)
	if err != nil {
		return fmt.Errorf("failed to delete entity meta: %w", err)
	}
	return nil
}

func (r *MetaRepo) CountWithValue(key, value string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM entity_meta WHERE meta_key = ? AND meta_value = ?
	`, key, value).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entity meta: %w", err)
	}
	return count, nil
}

// EntityIDsMissing returns published products that have no metadata row for
// the given key.
func (r *MetaRepo) EntityIDsMissing(key string, limit int) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT p.id
		FROM products p
		LEFT JOIN entity_meta m ON m.entity_id = p.id AND m.meta_key = ?
		WHERE p.status = 'published' AND m.entity_id IS NULL
		ORDER BY p.created_at, p.id
		LIMIT ?
	`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities missing meta: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan entity ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity IDs: %w", err)
	}

	return ids, nil
}

func (r *MetaRepo) AverageInt(key string) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRow(`
		SELECT AVG(CAST(meta_value AS INTEGER)) FROM entity_meta WHERE meta_key = ?
	`, key).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to average entity meta: %w", err)
	}
	return avg.Float64, nil
}

func (r *MetaRepo) TopEntitiesByInt(key string, limit int) ([]EntityScore, error) {
	rows, err := r.db.Query(`
		SELECT m.entity_id, p.title, p.slug, CAST(m.meta_value AS INTEGER)
		FROM entity_meta m
		JOIN products p ON p.id = m.entity_id
		WHERE m.meta_key = ?
		ORDER BY CAST(m.meta_value AS INTEGER) DESC, p.created_at
		LIMIT ?
	`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top entities: %w", err)
	}
	defer rows.Close()

	var scores []EntityScore
	for rows.Next() {
		var s EntityScore
		if err := rows.Scan(&s.EntityID, &s.Title, &s.Slug, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan entity score: %w", err)
		}
		scores = append(scores, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity scores: %w", err)
	}

	return scores, nil
}

func (r *MetaRepo) ListWithKey(key string, limit int) ([]MetaEntry, error) {
	rows, err := r.db.Query(`
		SELECT entity_id, meta_key, meta_value, updated_at
		FROM entity_meta
		WHERE meta_key = ? AND meta_value != ''
		ORDER BY updated_at DESC
		LIMIT ?
	`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entity meta: %w", err)
	}
	defer rows.Close()

	var entries []MetaEntry
	for rows.Next() {
		var e MetaEntry
		if err := rows.Scan(&e.EntityID, &e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meta entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meta entries: %w", err)
	}

	return entries, nil
}
