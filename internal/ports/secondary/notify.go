package secondary

import "context"

// Notifier defines the secondary port for readiness notifications.
// Delivery mechanics (push, email) live behind this boundary; the engine
// only signals that something became worth telling someone about.
type Notifier interface {
	// NotifyOperationReady signals that an operation transitioned from
	// blocked to ready.
	NotifyOperationReady(ctx context.Context, operationID string) error

	// NotifyHighPriorityOperation signals that a high-priority operation
	// became ready and may warrant pre-emption.
	NotifyHighPriorityOperation(ctx context.Context, operationID string) error
}
