// Package primary defines the primary ports (driving interfaces) for the
// engine: the services request handlers and the CLI call into.
package primary

import "context"

// WorkOrderService defines the primary port for work order operations.
type WorkOrderService interface {
	// CreateWorkOrderWithRouting creates a work order, its routing, the
	// routing's operations, and their dependency edges in one call, then
	// primes readiness and queues for every operation created.
	CreateWorkOrderWithRouting(ctx context.Context, req CreateWorkOrderRequest) (*CreateWorkOrderResponse, error)

	// GetWorkOrder retrieves a work order by ID.
	GetWorkOrder(ctx context.Context, workOrderID string) (*WorkOrder, error)

	// ListWorkOrders lists work orders with optional filters.
	ListWorkOrders(ctx context.Context, filters WorkOrderFilters) ([]*WorkOrder, error)

	// RefreshWorkOrderStatus re-derives the aggregate status from the
	// work order's operations.
	RefreshWorkOrderStatus(ctx context.Context, workOrderID string) (*WorkOrder, error)
}

// CreateWorkOrderRequest contains parameters for creating a work order
// with its routing.
type CreateWorkOrderRequest struct {
	PartID       string
	Priority     int
	DueDate      string // RFC3339, optional
	RoutingName  string
	Operations   []OperationSpec
	Dependencies []DependencySpec
}

// OperationSpec describes one operation of the routing being created.
// SequenceNumber is an ordering hint within the routing, not a
// dependency substitute.
type OperationSpec struct {
	OperationType    string
	WorkCenterID     string
	AssignedUserID   string
	SequenceNumber   int
	PlannedQty       int
	PlannedSetupTime int
	PlannedRunTime   int
	Priority         int
}

// DependencySpec describes one precedence edge between two operations of
// the routing, referenced by sequence number.
type DependencySpec struct {
	SequenceNumber          int
	DependsOnSequenceNumber int
	DependencyType          string
	LagTime                 int
}

// CreateWorkOrderResponse contains the result of creating a work order.
type CreateWorkOrderResponse struct {
	WorkOrderID  string
	RoutingID    string
	OperationIDs []string
	WorkOrder    *WorkOrder
}

// WorkOrder represents a work order entity at the port boundary.
type WorkOrder struct {
	ID          string
	PartID      string
	PartNumber  string
	Status      string
	Priority    int
	DueDate     string
	CreatedAt   string
	UpdatedAt   string
	StartedAt   string
	CompletedAt string
}

// WorkOrderFilters contains filter options for listing work orders.
type WorkOrderFilters struct {
	Status string
	Limit  int
}
