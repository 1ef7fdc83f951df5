package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// QueueRepository implements secondary.QueueRepository with SQLite.
type QueueRepository struct {
	db *sql.DB
}

// NewQueueRepository creates a new SQLite queue repository.
func NewQueueRepository(db *sql.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

// ReplaceForWorkCenter atomically deletes the current snapshot for the
// work center and inserts the given entries in order.
func (r *QueueRepository) ReplaceForWorkCenter(ctx context.Context, workCenterID string, entries []*secondary.QueueEntryRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin queue replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM work_center_queue WHERE work_center_id = ?", workCenterID,
	); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO work_center_queue
				(id, work_center_id, operation_id, queue_position, priority, estimated_wait_time)
			VALUES (?, ?, ?, ?, ?, ?)`,
			entry.ID, workCenterID, entry.OperationID, entry.QueuePosition,
			entry.Priority, entry.EstimatedWaitTime,
		); err != nil {
			return fmt.Errorf("failed to insert queue entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit queue replace: %w", err)
	}

	return nil
}

// ListForWorkCenter retrieves the current snapshot ordered by queue
// position.
func (r *QueueRepository) ListForWorkCenter(ctx context.Context, workCenterID string) ([]*secondary.QueueEntryRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, work_center_id, operation_id, queue_position, priority, estimated_wait_time, created_at
		FROM work_center_queue WHERE work_center_id = ? ORDER BY queue_position`,
		workCenterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.QueueEntryRecord
	for rows.Next() {
		var createdAt time.Time

		record := &secondary.QueueEntryRecord{}
		err := rows.Scan(&record.ID, &record.WorkCenterID, &record.OperationID,
			&record.QueuePosition, &record.Priority, &record.EstimatedWaitTime, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan queue entry: %w", err)
		}

		record.CreatedAt = createdAt.Format(time.RFC3339)
		entries = append(entries, record)
	}

	return entries, nil
}

// Ensure QueueRepository implements the interface
var _ secondary.QueueRepository = (*QueueRepository)(nil)
