package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/schemapress/schemapress/app/database"
)

const (
	topProductLimit  = 10
	errorLogLimit    = 50
	recentEventLimit = 20

	criticalErrorThreshold = 10
	criticalScoreThreshold = 50
	warningErrorThreshold  = 5
	warningScoreThreshold  = 70
)

// Health status levels, ordered worst to best.
const (
	HealthCritical  = "critical"
	HealthWarning   = "warning"
	HealthExcellent = "excellent"
)

type Overview struct {
	TotalProducts  int     `json:"total_products"`
	Published      int     `json:"published"`
	WithSchema     int     `json:"with_schema"`
	SchemaCoverage float64 `json:"schema_coverage"`
	ValidSchemas   int     `json:"valid_schemas"`
	InvalidSchemas int     `json:"invalid_schemas"`
	AvgSchemaScore float64 `json:"avg_schema_score"`
	AvgSEOScore    float64 `json:"avg_seo_score"`
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type TopProduct struct {
	EntityID string `json:"entity_id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Score    int    `json:"score"`
}

type ErrorEntry struct {
	EntityID string   `json:"entity_id"`
	Errors   []string `json:"errors"`
}

type RecentEvent struct {
	EntityID  string    `json:"entity_id"`
	Type      string    `json:"type"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Dashboard struct {
	Overview       Overview       `json:"overview"`
	Health         Health         `json:"health"`
	WeeklyActivity map[string]int `json:"weekly_activity"`
	TopProducts    []TopProduct   `json:"top_products"`
	ErrorLog       []ErrorEntry   `json:"error_log"`
	RecentEvents   []RecentEvent  `json:"recent_events"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// Service aggregates catalog state and optimization history into the
// dashboard payload.
type Service struct {
	products database.ProductRepository
	meta     database.MetaRepository
	events   database.EventRepository
}

func NewService(products database.ProductRepository, meta database.MetaRepository, events database.EventRepository) *Service {
	return &Service{products: products, meta: meta, events: events}
}

func (s *Service) BuildDashboard() (*Dashboard, error) {
	overview, err := s.buildOverview()
	if err != nil {
		return nil, err
	}

	errorLog, err := s.buildErrorLog()
	if err != nil {
		return nil, err
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	activity, err := s.events.CountByTypeSince(weekAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly activity: %w", err)
	}

	events, err := s.events.ListSince(weekAgo, recentEventLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent events: %w", err)
	}
	recent := make([]RecentEvent, 0, len(events))
	for _, e := range events {
		recent = append(recent, RecentEvent{
			EntityID:  e.EntityID,
			Type:      e.Type,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}

	top, err := s.buildTopProducts()
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Overview:       *overview,
		Health:         s.assessHealth(overview, errorLog),
		WeeklyActivity: activity,
		TopProducts:    top,
		ErrorLog:       errorLog,
		RecentEvents:   recent,
		GeneratedAt:    time.Now().UTC(),
	}, nil
}

func (s *Service) buildOverview() (*Overview, error) {
	total, err := s.products.CountAll()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	published, err := s.products.CountPublished()
	if err != nil {
		return nil, fmt.Errorf("failed to count published products: %w", err)
	}
	withSchema, err := s.meta.CountWithValue(database.MetaSchemaAdded, "1")
	if err != nil {
		return nil, fmt.Errorf("failed to count products with markup: %w", err)
	}
	valid, err := s.meta.CountWithValue(database.MetaSchemaValid, "1")
	if err != nil {
		return nil, fmt.Errorf("failed to count valid markup: %w", err)
	}
	invalid, err := s.meta.CountWithValue(database.MetaSchemaValid, "0")
	if err != nil {
		return nil, fmt.Errorf("failed to count invalid markup: %w", err)
	}
	avgSchema, err := s.meta.AverageInt(database.MetaSchemaScore)
	if err != nil {
		return nil, fmt.Errorf("failed to average markup scores: %w", err)
	}
	avgSEO, err := s.meta.AverageInt(database.MetaSEOScore)
	if err != nil {
		return nil, fmt.Errorf("failed to average SEO scores: %w", err)
	}

	coverage := 0.0
	if published > 0 {
		coverage = math.Round(float64(withSchema)/float64(published)*1000) / 10
	}

	return &Overview{
		TotalProducts:  total,
		Published:      published,
		WithSchema:     withSchema,
		SchemaCoverage: coverage,
		ValidSchemas:   valid,
		InvalidSchemas: invalid,
		AvgSchemaScore: math.Round(avgSchema*10) / 10,
		AvgSEOScore:    math.Round(avgSEO*10) / 10,
	}, nil
}

func (s *Service) buildErrorLog() ([]ErrorEntry, error) {
	entries, err := s.meta.ListWithKey(database.MetaSchemaErrors, errorLogLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load error log: %w", err)
	}

	log := make([]ErrorEntry, 0, len(entries))
	for _, entry := range entries {
		var errors []string
		if err := json.Unmarshal([]byte(entry.Value), &errors); err != nil {
			continue
		}
		if len(errors) == 0 {
			continue
		}
		log = append(log, ErrorEntry{EntityID: entry.EntityID, Errors: errors})
	}

	return log, nil
}

func (s *Service) buildTopProducts() ([]TopProduct, error) {
	scores, err := s.meta.TopEntitiesByInt(database.MetaSEOScore, topProductLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}

	top := make([]TopProduct, 0, len(scores))
	for _, score := range scores {
		top = append(top, TopProduct{
			EntityID: score.EntityID,
			Title:    score.Title,
			Slug:     score.Slug,
			Score:    score.Value,
		})
	}

	return top, nil
}

// assessHealth grades the catalog: many invalid entities or a low average
// score is critical, a moderate amount is a warning, everything else is
// healthy.
func (s *Service) assessHealth(overview *Overview, errorLog []ErrorEntry) Health {
	errorCount := len(errorLog)
	avg := overview.AvgSchemaScore

	switch {
	case errorCount > criticalErrorThreshold || (avg > 0 && avg < criticalScoreThreshold):
		return Health{
			Status:  HealthCritical,
			Message: fmt.Sprintf("%d entities carry markup errors and the average score is %.1f; run the error fixer", errorCount, avg),
		}
	case errorCount > warningErrorThreshold || (avg > 0 && avg < warningScoreThreshold):
		return Health{
			Status:  HealthWarning,
			Message: fmt.Sprintf("%d entities carry markup errors; review the error log", errorCount),
		}
	default:
		return Health{
			Status:  HealthExcellent,
			Message: "structured data is in good shape",
		}
	}
}
