package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// WorkOrderRepository implements secondary.WorkOrderRepository with SQLite.
type WorkOrderRepository struct {
	db *sql.DB
}

// NewWorkOrderRepository creates a new SQLite work order repository.
func NewWorkOrderRepository(db *sql.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

const workOrderColumns = `w.id, w.part_id, p.part_number, w.status, w.priority,
	w.due_date, w.created_at, w.updated_at, w.started_at, w.completed_at`

// Create persists a new work order.
func (r *WorkOrderRepository) Create(ctx context.Context, workOrder *secondary.WorkOrderRecord) error {
	var partID sql.NullString
	if workOrder.PartID != "" {
		partID = sql.NullString{String: workOrder.PartID, Valid: true}
	}
	var dueDate sql.NullString
	if workOrder.DueDate != "" {
		dueDate = sql.NullString{String: workOrder.DueDate, Valid: true}
	}

	status := workOrder.Status
	if status == "" {
		status = "todo"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO work_orders (id, part_id, status, priority, due_date) VALUES (?, ?, ?, ?, ?)",
		workOrder.ID, partID, status, workOrder.Priority, dueDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create work order: %w", err)
	}

	return nil
}

// GetByID retrieves a work order by its ID.
func (r *WorkOrderRepository) GetByID(ctx context.Context, id string) (*secondary.WorkOrderRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+workOrderColumns+" FROM work_orders w LEFT JOIN parts p ON w.part_id = p.id WHERE w.id = ?",
		id,
	)

	record, err := scanWorkOrder(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("work order %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work order: %w", err)
	}

	return record, nil
}

// List retrieves work orders matching the given filters.
func (r *WorkOrderRepository) List(ctx context.Context, filters secondary.WorkOrderFilters) ([]*secondary.WorkOrderRecord, error) {
	query := "SELECT " + workOrderColumns + " FROM work_orders w LEFT JOIN parts p ON w.part_id = p.id WHERE 1=1"
	args := []any{}

	if filters.Status != "" {
		query += " AND w.status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY w.priority DESC, w.due_date IS NULL, w.due_date, w.id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	defer rows.Close()

	var workOrders []*secondary.WorkOrderRecord
	for rows.Next() {
		record, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work order: %w", err)
		}
		workOrders = append(workOrders, record)
	}

	return workOrders, nil
}

// UpdateStatus updates the status and optionally completed_at timestamp.
func (r *WorkOrderRepository) UpdateStatus(ctx context.Context, id, status string, setCompleted bool) error {
	var query string
	if setCompleted {
		query = "UPDATE work_orders SET status = ?, completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	} else {
		query = "UPDATE work_orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	}

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update work order status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("work order %s not found", id)
	}

	return nil
}

// GetNextID returns the next available work order ID.
func (r *WorkOrderRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM work_orders",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next work order ID: %w", err)
	}

	return fmt.Sprintf("WO-%03d", maxID+1), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkOrder(row rowScanner) (*secondary.WorkOrderRecord, error) {
	var (
		partID      sql.NullString
		partNumber  sql.NullString
		dueDate     sql.NullTime
		createdAt   time.Time
		updatedAt   time.Time
		startedAt   sql.NullTime
		completedAt sql.NullTime
	)

	record := &secondary.WorkOrderRecord{}
	err := row.Scan(&record.ID, &partID, &partNumber, &record.Status, &record.Priority,
		&dueDate, &createdAt, &updatedAt, &startedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	record.PartID = partID.String
	record.PartNumber = partNumber.String
	if dueDate.Valid {
		record.DueDate = dueDate.Time.Format(time.RFC3339)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if startedAt.Valid {
		record.StartedAt = startedAt.Time.Format(time.RFC3339)
	}
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// Ensure WorkOrderRepository implements the interface
var _ secondary.WorkOrderRepository = (*WorkOrderRepository)(nil)
