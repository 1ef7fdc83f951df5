package app

import (
	"context"
	"fmt"

	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// Dispatcher propagates an operation status change: readiness is
// recalculated for the direct dependents, then the changed operation's
// work center queue is rebuilt. The two steps run synchronously in that
// order so a subsequent queue read observes the new state.
type Dispatcher struct {
	operationRepo  secondary.OperationRepository
	dependencyRepo secondary.DependencyRepository
	readiness      primary.ReadinessService
	queues         primary.QueueService
}

// NewDispatcher creates a new Dispatcher with injected dependencies.
func NewDispatcher(
	operationRepo secondary.OperationRepository,
	dependencyRepo secondary.DependencyRepository,
	readiness primary.ReadinessService,
	queues primary.QueueService,
) *Dispatcher {
	return &Dispatcher{
		operationRepo:  operationRepo,
		dependencyRepo: dependencyRepo,
		readiness:      readiness,
		queues:         queues,
	}
}

// OperationStatusChanged recalculates readiness for exactly the
// operations whose dependency edges name the changed operation as
// predecessor, then rebuilds the affected work center queue.
func (d *Dispatcher) OperationStatusChanged(ctx context.Context, operationID string) error {
	op, err := d.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return err
	}

	dependents, err := d.dependencyRepo.ListDependents(ctx, operationID)
	if err != nil {
		return fmt.Errorf("failed to list dependents of %s: %w", operationID, err)
	}

	for _, edge := range dependents {
		if _, err := d.readiness.CalculateReadiness(ctx, edge.OperationID); err != nil {
			return fmt.Errorf("failed to recalculate readiness for %s: %w", edge.OperationID, err)
		}
	}

	if op.WorkCenterID != "" {
		if err := d.queues.UpdateWorkCenterQueue(ctx, op.WorkCenterID); err != nil {
			return err
		}
	}

	return nil
}
