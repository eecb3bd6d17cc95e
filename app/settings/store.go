package settings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/schemapress/schemapress/app/database"
)

// Store loads and persists the settings record. Load reads afresh on every
// call so each request observes the latest values.
type Store struct {
	repo database.SettingsRepository
}

func NewStore(repo database.SettingsRepository) *Store {
	return &Store{repo: repo}
}

// Seed writes the default values for keys not present yet. Called once at
// startup; existing values are never overwritten.
func (s *Store) Seed() error {
	if err := s.repo.SetMany(Defaults()); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}

func (s *Store) Load() (*Settings, error) {
	values, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return FromMap(values), nil
}

// All returns the raw key-value view: defaults overlaid with stored
// values.
func (s *Store) All() (map[string]string, error) {
	stored, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	values := Defaults()
	for k, v := range stored {
		values[k] = v
	}
	return values, nil
}

// Set updates a single setting after checking the key is known.
func (s *Store) Set(key, value string) error {
	if _, ok := Defaults()[key]; !ok {
		return fmt.Errorf("unknown setting key: %s", key)
	}
	return s.repo.Set(key, value)
}

// Keys returns all known setting keys in stable order.
func Keys() []string {
	defaults := Defaults()
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderTemplate substitutes the supported placeholders in a meta-tag
// template.
func RenderTemplate(template string, values map[string]string) string {
	out := template
	for name, value := range values {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}

// MetaTagValues collects the placeholder substitutions for one entity,
// falling back to the configured price and currency defaults.
func (s *Settings) MetaTagValues(p *database.Product) map[string]string {
	price := p.Price
	if price <= 0 {
		price = s.DefaultPrice
	}
	currency := p.Currency
	if currency == "" {
		currency = s.DefaultCurrency
	}
	return map[string]string{
		"product_name": p.Title,
		"site_name":    s.SiteName,
		"price":        fmt.Sprintf("%.2f", price),
		"currency":     currency,
	}
}
