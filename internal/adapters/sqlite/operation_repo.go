package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// OperationRepository implements secondary.OperationRepository with SQLite.
type OperationRepository struct {
	db *sql.DB
}

// NewOperationRepository creates a new SQLite operation repository.
func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

// operationColumns joins through the owning routing so every record
// carries its work order ID and due date.
const operationColumns = `o.id, o.routing_id, rt.work_order_id, o.operation_type, o.work_center_id,
	o.assigned_user_id, o.sequence_number, o.status, o.planned_qty, o.completed_qty, o.scrapped_qty,
	o.planned_setup_time, o.planned_run_time, o.actual_setup_time, o.actual_run_time, o.priority,
	w.due_date, o.started_at, o.setup_completed_at, o.completed_at, o.created_at, o.updated_at`

const operationFrom = ` FROM operations o
	JOIN work_order_routings rt ON o.routing_id = rt.id
	JOIN work_orders w ON rt.work_order_id = w.id`

// Create persists a new operation.
func (r *OperationRepository) Create(ctx context.Context, operation *secondary.OperationRecord) error {
	var userID sql.NullString
	if operation.AssignedUserID != "" {
		userID = sql.NullString{String: operation.AssignedUserID, Valid: true}
	}

	status := operation.Status
	if status == "" {
		status = "pending"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO operations
			(id, routing_id, operation_type, work_center_id, assigned_user_id, sequence_number,
			 status, planned_qty, planned_setup_time, planned_run_time, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		operation.ID, operation.RoutingID, operation.OperationType, operation.WorkCenterID,
		userID, operation.SequenceNumber, status, operation.PlannedQty,
		operation.PlannedSetupTime, operation.PlannedRunTime, operation.Priority,
	)
	if err != nil {
		return fmt.Errorf("failed to create operation: %w", err)
	}

	return nil
}

// GetByID retrieves an operation by its ID.
func (r *OperationRepository) GetByID(ctx context.Context, id string) (*secondary.OperationRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+operationColumns+operationFrom+" WHERE o.id = ?", id)

	record, err := scanOperation(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("operation %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operation: %w", err)
	}

	return record, nil
}

// List retrieves operations matching the given filters.
func (r *OperationRepository) List(ctx context.Context, filters secondary.OperationFilters) ([]*secondary.OperationRecord, error) {
	query := "SELECT " + operationColumns + operationFrom + " WHERE 1=1"
	args := []any{}

	if filters.RoutingID != "" {
		query += " AND o.routing_id = ?"
		args = append(args, filters.RoutingID)
	}

	if filters.WorkOrderID != "" {
		query += " AND rt.work_order_id = ?"
		args = append(args, filters.WorkOrderID)
	}

	if filters.WorkCenterID != "" {
		query += " AND o.work_center_id = ?"
		args = append(args, filters.WorkCenterID)
	}

	if filters.Status != "" {
		query += " AND o.status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY o.routing_id, o.sequence_number"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	var operations []*secondary.OperationRecord
	for rows.Next() {
		record, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		operations = append(operations, record)
	}

	return operations, nil
}

// UpdateStatus updates the status and stamps the selected lifecycle
// timestamps. Stamps only fill columns that are still NULL so a
// pause/resume cycle keeps the first value.
func (r *OperationRepository) UpdateStatus(ctx context.Context, id, status string, stamps secondary.StatusStamps) error {
	query := "UPDATE operations SET status = ?, updated_at = CURRENT_TIMESTAMP"
	if stamps.SetStartedAt {
		query += ", started_at = COALESCE(started_at, CURRENT_TIMESTAMP)"
	}
	if stamps.SetSetupCompletedAt {
		query += ", setup_completed_at = COALESCE(setup_completed_at, CURRENT_TIMESTAMP)"
	}
	if stamps.SetCompletedAt {
		query += ", completed_at = COALESCE(completed_at, CURRENT_TIMESTAMP)"
	}
	query += " WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update operation status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("operation %s not found", id)
	}

	return nil
}

// UpdateQuantities updates completed and scrapped quantities.
func (r *OperationRepository) UpdateQuantities(ctx context.Context, id string, completedQty, scrappedQty int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE operations SET completed_qty = ?, scrapped_qty = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		completedQty, scrappedQty, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update operation quantities: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("operation %s not found", id)
	}

	return nil
}

// UpdateActualTimes records operator-reported actual setup and run minutes.
func (r *OperationRepository) UpdateActualTimes(ctx context.Context, id string, setupTime, runTime int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE operations SET actual_setup_time = ?, actual_run_time = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		setupTime, runTime, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update actual times: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("operation %s not found", id)
	}

	return nil
}

// AssignUser assigns an operator to the operation.
func (r *OperationRepository) AssignUser(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE operations SET assigned_user_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to assign user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("operation %s not found", id)
	}

	return nil
}

// GetNextID returns the next available operation ID.
func (r *OperationRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM operations",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next operation ID: %w", err)
	}

	return fmt.Sprintf("OP-%03d", maxID+1), nil
}

// RoutingExists checks if a routing exists.
func (r *OperationRepository) RoutingExists(ctx context.Context, routingID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM work_order_routings WHERE id = ?", routingID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check routing existence: %w", err)
	}
	return count > 0, nil
}

// WorkCenterExists checks if a work center exists.
func (r *OperationRepository) WorkCenterExists(ctx context.Context, workCenterID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM work_centers WHERE id = ?", workCenterID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check work center existence: %w", err)
	}
	return count > 0, nil
}

func scanOperation(row rowScanner) (*secondary.OperationRecord, error) {
	var (
		userID           sql.NullString
		dueDate          sql.NullTime
		startedAt        sql.NullTime
		setupCompletedAt sql.NullTime
		completedAt      sql.NullTime
		createdAt        time.Time
		updatedAt        time.Time
	)

	record := &secondary.OperationRecord{}
	err := row.Scan(&record.ID, &record.RoutingID, &record.WorkOrderID, &record.OperationType,
		&record.WorkCenterID, &userID, &record.SequenceNumber, &record.Status,
		&record.PlannedQty, &record.CompletedQty, &record.ScrappedQty,
		&record.PlannedSetupTime, &record.PlannedRunTime, &record.ActualSetupTime,
		&record.ActualRunTime, &record.Priority, &dueDate,
		&startedAt, &setupCompletedAt, &completedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.AssignedUserID = userID.String
	if dueDate.Valid {
		record.WorkOrderDueDate = dueDate.Time.Format(time.RFC3339)
	}
	if startedAt.Valid {
		record.StartedAt = startedAt.Time.Format(time.RFC3339)
	}
	if setupCompletedAt.Valid {
		record.SetupCompletedAt = setupCompletedAt.Time.Format(time.RFC3339)
	}
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Ensure OperationRepository implements the interface
var _ secondary.OperationRepository = (*OperationRepository)(nil)
