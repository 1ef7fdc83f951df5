package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// RoutingRepository implements secondary.RoutingRepository with SQLite.
type RoutingRepository struct {
	db *sql.DB
}

// NewRoutingRepository creates a new SQLite routing repository.
func NewRoutingRepository(db *sql.DB) *RoutingRepository {
	return &RoutingRepository{db: db}
}

// Create persists a new routing.
func (r *RoutingRepository) Create(ctx context.Context, routing *secondary.RoutingRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO work_order_routings (id, work_order_id, name) VALUES (?, ?, ?)",
		routing.ID, routing.WorkOrderID, routing.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create routing: %w", err)
	}

	return nil
}

// GetByID retrieves a routing by its ID.
func (r *RoutingRepository) GetByID(ctx context.Context, id string) (*secondary.RoutingRecord, error) {
	var createdAt time.Time

	record := &secondary.RoutingRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, work_order_id, name, created_at FROM work_order_routings WHERE id = ?",
		id,
	).Scan(&record.ID, &record.WorkOrderID, &record.Name, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("routing %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get routing: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// GetNextID returns the next available routing ID.
func (r *RoutingRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM work_order_routings",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next routing ID: %w", err)
	}

	return fmt.Sprintf("RT-%03d", maxID+1), nil
}

// Ensure RoutingRepository implements the interface
var _ secondary.RoutingRepository = (*RoutingRepository)(nil)
