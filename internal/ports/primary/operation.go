package primary

import "context"

// OperationService defines the primary port for operation mutations.
// Authorization is performed by the caller before any of these run.
type OperationService interface {
	// UpdateOperationStatus moves an operation through its lifecycle,
	// stamps timestamps, re-derives the owning work order's status, and
	// propagates readiness and queue changes. Illegal transitions are
	// rejected and nothing is persisted.
	UpdateOperationStatus(ctx context.Context, operationID, newStatus, notes string) (*Operation, error)

	// UpdateOperationQuantity updates completed and scrapped quantities.
	UpdateOperationQuantity(ctx context.Context, operationID string, completedQty, scrappedQty int) error

	// RecordActualTimes records operator-reported actual setup and run
	// minutes. Rejected until the operation has started setup.
	RecordActualTimes(ctx context.Context, operationID string, setupTime, runTime int) error

	// AssignUserToOperation assigns an operator and recalculates the
	// operation's readiness (the operator gate may have flipped).
	AssignUserToOperation(ctx context.Context, operationID, userID string) error

	// AddDependency creates a precedence edge between two operations,
	// rejecting edges that would close a cycle within the routing.
	AddDependency(ctx context.Context, req AddDependencyRequest) error

	// GetOperation retrieves an operation by ID.
	GetOperation(ctx context.Context, operationID string) (*Operation, error)

	// ListOperations lists operations with optional filters.
	ListOperations(ctx context.Context, filters OperationFilters) ([]*Operation, error)
}

// AddDependencyRequest contains parameters for creating a dependency edge.
type AddDependencyRequest struct {
	OperationID          string
	DependsOnOperationID string
	DependencyType       string
	LagTime              int
}

// Operation represents an operation entity at the port boundary.
type Operation struct {
	ID               string
	RoutingID        string
	WorkOrderID      string
	OperationType    string
	WorkCenterID     string
	AssignedUserID   string
	SequenceNumber   int
	Status           string
	PlannedQty       int
	CompletedQty     int
	ScrappedQty      int
	PlannedSetupTime int
	PlannedRunTime   int
	ActualSetupTime  int
	ActualRunTime    int
	Priority         int
	StartedAt        string
	SetupCompletedAt string
	CompletedAt      string
	CreatedAt        string
	UpdatedAt        string
}

// OperationFilters contains filter options for listing operations.
type OperationFilters struct {
	RoutingID    string
	WorkCenterID string
	Status       string
}
