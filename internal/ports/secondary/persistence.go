// Package secondary defines the secondary ports (driven adapters) for the
// engine. These are the interfaces through which the application drives
// external systems, persistence first among them.
package secondary

import "context"

// WorkCenterRepository defines the secondary port for work center persistence.
type WorkCenterRepository interface {
	// Create persists a new work center.
	Create(ctx context.Context, workCenter *WorkCenterRecord) error

	// GetByID retrieves a work center by its ID.
	GetByID(ctx context.Context, id string) (*WorkCenterRecord, error)

	// List retrieves all work centers.
	List(ctx context.Context) ([]*WorkCenterRecord, error)

	// GetNextID returns the next available work center ID.
	GetNextID(ctx context.Context) (string, error)
}

// WorkCenterRecord represents a work center as stored in persistence.
type WorkCenterRecord struct {
	ID          string
	Name        string
	Description string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// WorkOrderRepository defines the secondary port for work order persistence.
type WorkOrderRepository interface {
	// Create persists a new work order.
	Create(ctx context.Context, workOrder *WorkOrderRecord) error

	// GetByID retrieves a work order by its ID.
	GetByID(ctx context.Context, id string) (*WorkOrderRecord, error)

	// List retrieves work orders matching the given filters.
	List(ctx context.Context, filters WorkOrderFilters) ([]*WorkOrderRecord, error)

	// UpdateStatus updates the status and optionally completed_at timestamp.
	UpdateStatus(ctx context.Context, id, status string, setCompleted bool) error

	// GetNextID returns the next available work order ID.
	GetNextID(ctx context.Context) (string, error)
}

// WorkOrderRecord represents a work order as stored in persistence.
// PartNumber is a display-oriented join against parts.
type WorkOrderRecord struct {
	ID          string
	PartID      string
	PartNumber  string
	Status      string
	Priority    int
	DueDate     string // RFC3339, empty when no due date
	CreatedAt   string
	UpdatedAt   string
	StartedAt   string
	CompletedAt string
}

// WorkOrderFilters contains filter options for querying work orders.
type WorkOrderFilters struct {
	Status string
	Limit  int
}

// RoutingRepository defines the secondary port for routing persistence.
type RoutingRepository interface {
	// Create persists a new routing.
	Create(ctx context.Context, routing *RoutingRecord) error

	// GetByID retrieves a routing by its ID.
	GetByID(ctx context.Context, id string) (*RoutingRecord, error)

	// GetNextID returns the next available routing ID.
	GetNextID(ctx context.Context) (string, error)
}

// RoutingRecord represents a work order routing as stored in persistence.
type RoutingRecord struct {
	ID          string
	WorkOrderID string
	Name        string
	CreatedAt   string
}

// OperationRepository defines the secondary port for operation persistence.
type OperationRepository interface {
	// Create persists a new operation.
	Create(ctx context.Context, operation *OperationRecord) error

	// GetByID retrieves an operation by its ID.
	GetByID(ctx context.Context, id string) (*OperationRecord, error)

	// List retrieves operations matching the given filters.
	List(ctx context.Context, filters OperationFilters) ([]*OperationRecord, error)

	// UpdateStatus updates the status and stamps the lifecycle timestamps
	// selected in stamps. Returns a not-found error when id is unknown.
	UpdateStatus(ctx context.Context, id, status string, stamps StatusStamps) error

	// UpdateQuantities updates completed and scrapped quantities.
	UpdateQuantities(ctx context.Context, id string, completedQty, scrappedQty int) error

	// UpdateActualTimes records operator-reported actual setup and run
	// minutes.
	UpdateActualTimes(ctx context.Context, id string, setupTime, runTime int) error

	// AssignUser assigns an operator to the operation.
	AssignUser(ctx context.Context, id, userID string) error

	// GetNextID returns the next available operation ID.
	GetNextID(ctx context.Context) (string, error)

	// RoutingExists checks if a routing exists (for validation).
	RoutingExists(ctx context.Context, routingID string) (bool, error)

	// WorkCenterExists checks if a work center exists (for validation).
	WorkCenterExists(ctx context.Context, workCenterID string) (bool, error)
}

// StatusStamps selects which lifecycle timestamps a status update sets.
type StatusStamps struct {
	SetStartedAt        bool
	SetSetupCompletedAt bool
	SetCompletedAt      bool
}

// OperationRecord represents an operation as stored in persistence.
// WorkOrderID and WorkOrderDueDate are display/sort-oriented joins
// through the owning routing.
type OperationRecord struct {
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
	WorkOrderDueDate string
	StartedAt        string
	SetupCompletedAt string
	CompletedAt      string
	CreatedAt        string
	UpdatedAt        string
}

// OperationFilters contains filter options for querying operations.
// WorkOrderID filters through the owning routing.
type OperationFilters struct {
	RoutingID    string
	WorkOrderID  string
	WorkCenterID string
	Status       string
}

// DependencyRepository defines the secondary port for dependency edge
// persistence.
type DependencyRepository interface {
	// Create persists a new dependency edge.
	Create(ctx context.Context, dep *DependencyRecord) error

	// ListForOperation retrieves the edges gating the given operation
	// (edges where it is the dependent).
	ListForOperation(ctx context.Context, operationID string) ([]*DependencyRecord, error)

	// ListDependents retrieves the edges naming the given operation as
	// predecessor (reverse edges).
	ListDependents(ctx context.Context, dependsOnID string) ([]*DependencyRecord, error)

	// ListByRouting retrieves every edge between operations of a routing.
	ListByRouting(ctx context.Context, routingID string) ([]*DependencyRecord, error)

	// GetNextID returns the next available dependency ID.
	GetNextID(ctx context.Context) (string, error)
}

// DependencyRecord represents a dependency edge as stored in persistence.
type DependencyRecord struct {
	ID                   string
	OperationID          string
	DependsOnOperationID string
	DependencyType       string
	LagTime              int
	CreatedAt            string
}

// ReadinessRepository defines the secondary port for the derived
// readiness cache. Rows are recomputed by the engine and never written
// by external callers.
type ReadinessRepository interface {
	// Get retrieves the cached verdict for an operation. Returns
	// (nil, nil) when no verdict has been stored yet.
	Get(ctx context.Context, operationID string) (*ReadinessRecord, error)

	// Upsert stores the verdict for an operation, replacing any previous
	// row.
	Upsert(ctx context.Context, record *ReadinessRecord) error
}

// ReadinessRecord represents a cached readiness verdict.
type ReadinessRecord struct {
	OperationID       string
	IsReady           bool
	BlockedReasons    []string
	EstimatedWaitTime int
	LastCalculated    string
}

// QueueRepository defines the secondary port for work center queue
// snapshots. Snapshots are fully replaced, never patched.
type QueueRepository interface {
	// ReplaceForWorkCenter atomically deletes the current snapshot for
	// the work center and inserts the given entries in order.
	ReplaceForWorkCenter(ctx context.Context, workCenterID string, entries []*QueueEntryRecord) error

	// ListForWorkCenter retrieves the current snapshot ordered by
	// queue position.
	ListForWorkCenter(ctx context.Context, workCenterID string) ([]*QueueEntryRecord, error)
}

// QueueEntryRecord represents one ranked queue slot as stored in
// persistence.
type QueueEntryRecord struct {
	ID                string
	WorkCenterID      string
	OperationID       string
	QueuePosition     int
	Priority          int
	EstimatedWaitTime int
	CreatedAt         string
}

// EventRepository defines the secondary port for the operation event log.
type EventRepository interface {
	// Append persists a new event row.
	Append(ctx context.Context, event *EventRecord) error

	// ListForOperation retrieves events for an operation, newest first.
	ListForOperation(ctx context.Context, operationID string) ([]*EventRecord, error)
}

// EventRecord represents one audit/notification event.
type EventRecord struct {
	ID          string
	OperationID string
	EventType   string
	Detail      string
	CreatedAt   string
}
