package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ EventRepository = (*EventRepo)(nil)

type EventRepo struct {
	db *DB
}

func NewEventRepository(db *DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Insert(entityID, eventType, details string) error {
	_, err := r.db.Exec(`
		INSERT INTO optimization_events (id, entity_id, event_type, details, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.NewString(), entityID, eventType, details, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *EventRepo) ListSince(since time.Time, limit int) ([]Event, error) {
	rows, err := r.db.Query(`
		SELECT id, entity_id, event_type, details, created_at
		FROM optimization_events
		WHERE created_at >= ?
		ORDER BY created_at DESC
		LIMIT ?
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.EntityID, &e.Type, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

func (r *EventRepo) CountByTypeSince(since time.Time) (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT event_type, COUNT(*)
		FROM optimization_events
		WHERE created_at >= ?
		GROUP BY event_type
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		counts[eventType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event counts: %w", err)
	}

	return counts, nil
}
