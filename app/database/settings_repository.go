package database

import (
	"fmt"
	"time"
)

var _ SettingsRepository = (*SettingsRepo)(nil)

type SettingsRepo struct {
	db *DB
}

func NewSettingsRepository(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) GetAll() (map[string]string, error) {
	rows, err := r.db.Query("SELECT setting_key, setting_value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating setting rows: %w", err)
	}

	return values, nil
}

// Set upserts a single setting; last write wins.
func (r *SettingsRepo) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO settings (setting_key, setting_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (setting_key) DO UPDATE SET
			setting_value = excluded.setting_value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// SetMany seeds settings that do not exist yet; existing values are kept.
func (r *SettingsRepo) SetMany(values map[string]string) error {
	for key, value := range values {
		_, err := r.db.Exec(`
			INSERT INTO settings (setting_key, setting_value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT (setting_key) DO NOTHING
		`, key, value, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
	}
	return nil
}
