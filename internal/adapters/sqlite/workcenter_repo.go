// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// WorkCenterRepository implements secondary.WorkCenterRepository with SQLite.
type WorkCenterRepository struct {
	db *sql.DB
}

// NewWorkCenterRepository creates a new SQLite work center repository.
func NewWorkCenterRepository(db *sql.DB) *WorkCenterRepository {
	return &WorkCenterRepository{db: db}
}

// Create persists a new work center.
func (r *WorkCenterRepository) Create(ctx context.Context, workCenter *secondary.WorkCenterRecord) error {
	var desc sql.NullString
	if workCenter.Description != "" {
		desc = sql.NullString{String: workCenter.Description, Valid: true}
	}

	status := workCenter.Status
	if status == "" {
		status = "active"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO work_centers (id, name, description, status) VALUES (?, ?, ?, ?)",
		workCenter.ID, workCenter.Name, desc, status,
	)
	if err != nil {
		return fmt.Errorf("failed to create work center: %w", err)
	}

	return nil
}

// GetByID retrieves a work center by its ID.
func (r *WorkCenterRepository) GetByID(ctx context.Context, id string) (*secondary.WorkCenterRecord, error) {
	var (
		desc      sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.WorkCenterRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, status, created_at, updated_at FROM work_centers WHERE id = ?",
		id,
	).Scan(&record.ID, &record.Name, &desc, &record.Status, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("work center %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work center: %w", err)
	}

	record.Description = desc.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves all work centers ordered by ID.
func (r *WorkCenterRepository) List(ctx context.Context) ([]*secondary.WorkCenterRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, status, created_at, updated_at FROM work_centers ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list work centers: %w", err)
	}
	defer rows.Close()

	var workCenters []*secondary.WorkCenterRecord
	for rows.Next() {
		var (
			desc      sql.NullString
			createdAt time.Time
			updatedAt time.Time
		)

		record := &secondary.WorkCenterRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &desc, &record.Status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan work center: %w", err)
		}

		record.Description = desc.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)

		workCenters = append(workCenters, record)
	}

	return workCenters, nil
}

// GetNextID returns the next available work center ID.
func (r *WorkCenterRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM work_centers",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next work center ID: %w", err)
	}

	return fmt.Sprintf("WC-%03d", maxID+1), nil
}

// Ensure WorkCenterRepository implements the interface
var _ secondary.WorkCenterRepository = (*WorkCenterRepository)(nil)
