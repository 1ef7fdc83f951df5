package sqlite

import (
	"context"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// EventLogNotifier implements secondary.Notifier by appending rows to
// the operation event log. Shop floor terminals poll the log; there is
// no push channel.
type EventLogNotifier struct {
	events secondary.EventRepository
}

// NewEventLogNotifier creates a new EventLogNotifier.
func NewEventLogNotifier(events secondary.EventRepository) *EventLogNotifier {
	return &EventLogNotifier{events: events}
}

// NotifyOperationReady records that an operation became ready.
func (n *EventLogNotifier) NotifyOperationReady(ctx context.Context, operationID string) error {
	return n.events.Append(ctx, &secondary.EventRecord{
		OperationID: operationID,
		EventType:   "operation_ready",
	})
}

// NotifyHighPriorityOperation records that a high priority operation
// became ready and needs attention.
func (n *EventLogNotifier) NotifyHighPriorityOperation(ctx context.Context, operationID string) error {
	return n.events.Append(ctx, &secondary.EventRecord{
		OperationID: operationID,
		EventType:   "high_priority_ready",
	})
}

// Ensure EventLogNotifier implements the interface
var _ secondary.Notifier = (*EventLogNotifier)(nil)
