package primary

import "context"

// QueueService defines the primary port for work center queues.
type QueueService interface {
	// GetReadyOperations evaluates every pending operation at the work
	// center and returns the ready subset in execution order.
	GetReadyOperations(ctx context.Context, workCenterID string) ([]*Operation, error)

	// UpdateWorkCenterQueue rebuilds the work center's queue snapshot
	// from scratch. Rebuilds for the same work center are serialized.
	UpdateWorkCenterQueue(ctx context.Context, workCenterID string) error

	// GetQueue returns the current queue snapshot in position order.
	GetQueue(ctx context.Context, workCenterID string) ([]*QueueEntry, error)

	// NextOperation returns the operation at position 1, or nil when the
	// queue is empty.
	NextOperation(ctx context.Context, workCenterID string) (*QueueEntry, error)
}

// QueueEntry represents one ranked queue slot at the port boundary.
type QueueEntry struct {
	WorkCenterID      string
	OperationID       string
	QueuePosition     int
	Priority          int
	EstimatedWaitTime int
}
