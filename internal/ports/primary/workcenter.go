package primary

import "context"

// WorkCenterService defines the primary port for work center management.
// Work centers are minimal entities with no delete operation.
type WorkCenterService interface {
	// CreateWorkCenter creates a new work center.
	CreateWorkCenter(ctx context.Context, req CreateWorkCenterRequest) (*WorkCenter, error)

	// GetWorkCenter retrieves a work center by ID.
	GetWorkCenter(ctx context.Context, workCenterID string) (*WorkCenter, error)

	// ListWorkCenters lists all work centers.
	ListWorkCenters(ctx context.Context) ([]*WorkCenter, error)
}

// CreateWorkCenterRequest contains parameters for creating a work center.
type CreateWorkCenterRequest struct {
	Name        string
	Description string
}

// WorkCenter represents a work center entity at the port boundary.
type WorkCenter struct {
	ID          string
	Name        string
	Description string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}
