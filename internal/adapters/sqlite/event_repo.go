package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// EventRepository implements secondary.EventRepository with SQLite.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new SQLite event repository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Append persists a new event row. Generates an ID when the caller
// leaves it empty.
func (r *EventRepository) Append(ctx context.Context, event *secondary.EventRecord) error {
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}

	var detail sql.NullString
	if event.Detail != "" {
		detail = sql.NullString{String: event.Detail, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO operation_events (id, operation_id, event_type, detail) VALUES (?, ?, ?, ?)",
		id, event.OperationID, event.EventType, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	return nil
}

// ListForOperation retrieves events for an operation, newest first.
func (r *EventRepository) ListForOperation(ctx context.Context, operationID string) ([]*secondary.EventRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, operation_id, event_type, detail, created_at
		FROM operation_events WHERE operation_id = ?
		ORDER BY created_at DESC, id`,
		operationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*secondary.EventRecord
	for rows.Next() {
		var (
			detail    sql.NullString
			createdAt time.Time
		)

		record := &secondary.EventRecord{}
		if err := rows.Scan(&record.ID, &record.OperationID, &record.EventType, &detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		record.Detail = detail.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		events = append(events, record)
	}

	return events, nil
}

// Ensure EventRepository implements the interface
var _ secondary.EventRepository = (*EventRepository)(nil)
