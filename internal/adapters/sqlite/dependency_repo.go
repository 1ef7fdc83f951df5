package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// DependencyRepository implements secondary.DependencyRepository with SQLite.
type DependencyRepository struct {
	db *sql.DB
}

// NewDependencyRepository creates a new SQLite dependency repository.
func NewDependencyRepository(db *sql.DB) *DependencyRepository {
	return &DependencyRepository{db: db}
}

const dependencyColumns = "id, operation_id, depends_on_operation_id, dependency_type, lag_time, created_at"

// Create persists a new dependency edge.
func (r *DependencyRepository) Create(ctx context.Context, dep *secondary.DependencyRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO operation_dependencies
			(id, operation_id, depends_on_operation_id, dependency_type, lag_time)
		VALUES (?, ?, ?, ?, ?)`,
		dep.ID, dep.OperationID, dep.DependsOnOperationID, dep.DependencyType, dep.LagTime,
	)
	if err != nil {
		return fmt.Errorf("failed to create dependency: %w", err)
	}

	return nil
}

// ListForOperation retrieves the edges gating the given operation.
func (r *DependencyRepository) ListForOperation(ctx context.Context, operationID string) ([]*secondary.DependencyRecord, error) {
	return r.list(ctx,
		"SELECT "+dependencyColumns+" FROM operation_dependencies WHERE operation_id = ? ORDER BY id",
		operationID,
	)
}

// ListDependents retrieves the edges naming the given operation as
// predecessor.
func (r *DependencyRepository) ListDependents(ctx context.Context, dependsOnID string) ([]*secondary.DependencyRecord, error) {
	return r.list(ctx,
		"SELECT "+dependencyColumns+" FROM operation_dependencies WHERE depends_on_operation_id = ? ORDER BY id",
		dependsOnID,
	)
}

// ListByRouting retrieves every edge between operations of a routing.
func (r *DependencyRepository) ListByRouting(ctx context.Context, routingID string) ([]*secondary.DependencyRecord, error) {
	return r.list(ctx,
		`SELECT d.id, d.operation_id, d.depends_on_operation_id, d.dependency_type, d.lag_time, d.created_at
		FROM operation_dependencies d
		JOIN operations o ON d.operation_id = o.id
		WHERE o.routing_id = ?
		ORDER BY d.id`,
		routingID,
	)
}

func (r *DependencyRepository) list(ctx context.Context, query string, args ...any) ([]*secondary.DependencyRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependencies: %w", err)
	}
	defer rows.Close()

	var deps []*secondary.DependencyRecord
	for rows.Next() {
		var createdAt time.Time

		record := &secondary.DependencyRecord{}
		err := rows.Scan(&record.ID, &record.OperationID, &record.DependsOnOperationID,
			&record.DependencyType, &record.LagTime, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}

		record.CreatedAt = createdAt.Format(time.RFC3339)
		deps = append(deps, record)
	}

	return deps, nil
}

// GetNextID returns the next available dependency ID.
func (r *DependencyRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM operation_dependencies",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next dependency ID: %w", err)
	}

	return fmt.Sprintf("DEP-%03d", maxID+1), nil
}

// Ensure DependencyRepository implements the interface
var _ secondary.DependencyRepository = (*DependencyRepository)(nil)
