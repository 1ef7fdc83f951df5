package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// ReadinessRepository implements secondary.ReadinessRepository with SQLite.
// Blocked reasons are stored as a JSON array in a single column.
type ReadinessRepository struct {
	db *sql.DB
}

// NewReadinessRepository creates a new SQLite readiness repository.
func NewReadinessRepository(db *sql.DB) *ReadinessRepository {
	return &ReadinessRepository{db: db}
}

// Get retrieves the cached verdict for an operation. Returns (nil, nil)
// when no verdict has been stored yet.
func (r *ReadinessRepository) Get(ctx context.Context, operationID string) (*secondary.ReadinessRecord, error) {
	var (
		isReady int
		reasons string
	)

	record := &secondary.ReadinessRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT operation_id, is_ready, blocked_reasons, estimated_wait_time, last_calculated FROM operation_readiness WHERE operation_id = ?",
		operationID,
	).Scan(&record.OperationID, &isReady, &reasons, &record.EstimatedWaitTime, &record.LastCalculated)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get readiness: %w", err)
	}

	record.IsReady = isReady != 0
	if err := json.Unmarshal([]byte(reasons), &record.BlockedReasons); err != nil {
		return nil, fmt.Errorf("failed to decode blocked reasons: %w", err)
	}

	return record, nil
}

// Upsert stores the verdict for an operation, replacing any previous row.
func (r *ReadinessRepository) Upsert(ctx context.Context, record *secondary.ReadinessRecord) error {
	reasons := record.BlockedReasons
	if reasons == nil {
		reasons = []string{}
	}
	encoded, err := json.Marshal(reasons)
	if err != nil {
		return fmt.Errorf("failed to encode blocked reasons: %w", err)
	}

	isReady := 0
	if record.IsReady {
		isReady = 1
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO operation_readiness (operation_id, is_ready, blocked_reasons, estimated_wait_time, last_calculated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(operation_id) DO UPDATE SET
			is_ready = excluded.is_ready,
			blocked_reasons = excluded.blocked_reasons,
			estimated_wait_time = excluded.estimated_wait_time,
			last_calculated = excluded.last_calculated`,
		record.OperationID, isReady, string(encoded), record.EstimatedWaitTime, record.LastCalculated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert readiness: %w", err)
	}

	return nil
}

// Ensure ReadinessRepository implements the interface
var _ secondary.ReadinessRepository = (*ReadinessRepository)(nil)
