package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.EventRepository {
	return &eventRepository{db: db}
}

// Append implements event.EventRepository.
func (r *eventRepository) Append(ctx context.Context, ev event.Event) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	ev.Timestamp = ev.Timestamp.UTC()

	_, err := q.Exec(ctx, `
		INSERT INTO events (id, employee_id, ts, category, outcome, latitude, longitude, distance_meters, face_similarity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, ev.ID, ev.EmployeeID, ev.Timestamp, string(ev.Category), string(ev.Outcome),
		ev.Latitude, ev.Longitude, ev.DistanceMeters, ev.FaceSimilarity)
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to append event: %w", err)
	}

	return ev, nil
}

// ListInWindow implements event.EventRepository.
func (r *eventRepository) ListInWindow(ctx context.Context, fromUTC, toUTC time.Time) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, ts, category, outcome, latitude, longitude, distance_meters, face_similarity
		FROM events
		WHERE ts >= $1 AND ts < $2
		ORDER BY ts
	`, fromUTC, toUTC)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// ListEmployeeInWindow implements event.EventRepository.
func (r *eventRepository) ListEmployeeInWindow(ctx context.Context, employeeID int64, fromUTC, toUTC time.Time) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, ts, category, outcome, latitude, longitude, distance_meters, face_similarity
		FROM events
		WHERE employee_id = $1 AND ts >= $2 AND ts < $3
		ORDER BY ts
	`, employeeID, fromUTC, toUTC)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// HasOutcomeInWindow implements event.EventRepository.
func (r *eventRepository) HasOutcomeInWindow(ctx context.Context, employeeID int64, category event.Category, outcomes []event.Outcome, fromUTC, toUTC time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	outcomeStrs := make([]string, len(outcomes))
	for i, o := range outcomes {
		outcomeStrs[i] = string(o)
	}

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM events
			WHERE employee_id = $1
			  AND category = $2
			  AND outcome = ANY($3)
			  AND ts >= $4 AND ts < $5
		)
	`, employeeID, string(category), outcomeStrs, fromUTC, toUTC).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for outcome: %w", err)
	}

	return exists, nil
}

// ListAll implements event.EventRepository.
func (r *eventRepository) ListAll(ctx context.Context) ([]event.ExportRow, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT e.ts, emp.full_name, e.category, e.outcome, e.latitude, e.longitude, e.distance_meters, e.face_similarity
		FROM events e
		JOIN employees emp ON emp.telegram_id = e.employee_id
		ORDER BY e.ts DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to export events: %w", err)
	}
	defer rows.Close()

	var out []event.ExportRow
	for rows.Next() {
		var (
			row      event.ExportRow
			category string
			outcome  string
		)
		if err := rows.Scan(&row.Timestamp, &row.FullName, &category, &outcome,
			&row.Latitude, &row.Longitude, &row.DistanceMeters, &row.FaceSimilarity); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		row.Category = event.Category(category)
		row.Outcome = event.Outcome(outcome)
		out = append(out, row)
	}

	return out, rows.Err()
}

func scanEvent(scan func(dest ...any) error) (event.Event, error) {
	var (
		ev       event.Event
		category string
		outcome  string
	)
	if err := scan(&ev.ID, &ev.EmployeeID, &ev.Timestamp, &category, &outcome,
		&ev.Latitude, &ev.Longitude, &ev.DistanceMeters, &ev.FaceSimilarity); err != nil {
		return event.Event{}, fmt.Errorf("failed to scan event: %w", err)
	}
	ev.Category = event.Category(category)
	ev.Outcome = event.Outcome(outcome)
	return ev, nil
}
