// Package app contains the application layer: service implementations
// that load state through secondary ports, run the pure core logic, and
// persist and propagate the results.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/shopfloor/internal/core/dependency"
	"github.com/example/shopfloor/internal/core/operation"
	"github.com/example/shopfloor/internal/core/readiness"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// HighPriorityThreshold is the priority above which a ready operation
// also triggers a high-priority notification.
const HighPriorityThreshold = 5

// ReadinessServiceImpl implements the ReadinessService interface.
type ReadinessServiceImpl struct {
	operationRepo  secondary.OperationRepository
	dependencyRepo secondary.DependencyRepository
	readinessRepo  secondary.ReadinessRepository
	availability   secondary.AvailabilityChecker
	notifier       secondary.Notifier
}

// NewReadinessService creates a new ReadinessService with injected
// dependencies.
func NewReadinessService(
	operationRepo secondary.OperationRepository,
	dependencyRepo secondary.DependencyRepository,
	readinessRepo secondary.ReadinessRepository,
	availability secondary.AvailabilityChecker,
	notifier secondary.Notifier,
) *ReadinessServiceImpl {
	return &ReadinessServiceImpl{
		operationRepo:  operationRepo,
		dependencyRepo: dependencyRepo,
		readinessRepo:  readinessRepo,
		availability:   availability,
		notifier:       notifier,
	}
}

// CalculateReadiness evaluates an operation, refreshes the cached verdict,
// and notifies on the blocked-to-ready edge. Repeated calls while already
// ready do not re-notify.
func (s *ReadinessServiceImpl) CalculateReadiness(ctx context.Context, operationID string) (*primary.ReadinessCheck, error) {
	op, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, err
	}

	input, err := s.buildInput(ctx, op)
	if err != nil {
		return nil, err
	}

	verdict := readiness.Evaluate(input)

	previous, err := s.readinessRepo.Get(ctx, operationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous readiness: %w", err)
	}

	record := &secondary.ReadinessRecord{
		OperationID:       operationID,
		IsReady:           verdict.IsReady,
		BlockedReasons:    reasonsToStrings(verdict.BlockedReasons),
		EstimatedWaitTime: verdict.EstimatedWaitTime,
		LastCalculated:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.readinessRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store readiness: %w", err)
	}

	// Transition-edge trigger: notify only when the verdict flips to ready.
	becameReady := verdict.IsReady && (previous == nil || !previous.IsReady)
	if becameReady {
		if err := s.notifier.NotifyOperationReady(ctx, operationID); err != nil {
			return nil, fmt.Errorf("failed to notify operation ready: %w", err)
		}
		if op.Priority > HighPriorityThreshold {
			if err := s.notifier.NotifyHighPriorityOperation(ctx, operationID); err != nil {
				return nil, fmt.Errorf("failed to notify high priority operation: %w", err)
			}
		}
	}

	return &primary.ReadinessCheck{
		OperationID:       operationID,
		IsReady:           record.IsReady,
		BlockedReasons:    record.BlockedReasons,
		EstimatedWaitTime: record.EstimatedWaitTime,
		LastCalculated:    record.LastCalculated,
	}, nil
}

// buildInput assembles the pure evaluation input: gating edges with their
// predecessors' state, sibling occupancy at the work center, and the
// availability signals.
func (s *ReadinessServiceImpl) buildInput(ctx context.Context, op *secondary.OperationRecord) (readiness.Input, error) {
	edges, err := s.dependencyRepo.ListForOperation(ctx, op.ID)
	if err != nil {
		return readiness.Input{}, fmt.Errorf("failed to load dependencies: %w", err)
	}

	checks := make([]readiness.EdgeCheck, 0, len(edges))
	for _, edge := range edges {
		pred, err := s.operationRepo.GetByID(ctx, edge.DependsOnOperationID)
		if err != nil {
			return readiness.Input{}, fmt.Errorf("failed to load predecessor %s: %w", edge.DependsOnOperationID, err)
		}
		checks = append(checks, readiness.EdgeCheck{
			Edge: dependency.Edge{
				OperationID: edge.OperationID,
				DependsOnID: edge.DependsOnOperationID,
				Type:        dependency.Type(edge.DependencyType),
				LagTime:     edge.LagTime,
			},
			Predecessor: readiness.PredecessorState{
				Status:         operation.Status(pred.Status),
				PlannedRunTime: pred.PlannedRunTime,
			},
		})
	}

	siblings, err := s.operationRepo.List(ctx, secondary.OperationFilters{WorkCenterID: op.WorkCenterID})
	if err != nil {
		return readiness.Input{}, fmt.Errorf("failed to load work center operations: %w", err)
	}
	peers := make([]readiness.PeerState, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID == op.ID {
			continue
		}
		peers = append(peers, readiness.PeerState{
			Status:         operation.Status(sibling.Status),
			PlannedRunTime: sibling.PlannedRunTime,
		})
	}

	material, err := s.availability.MaterialAvailable(ctx, op.ID)
	if err != nil {
		return readiness.Input{}, fmt.Errorf("failed to check material availability: %w", err)
	}
	tooling, err := s.availability.ToolingAvailable(ctx, op.ID)
	if err != nil {
		return readiness.Input{}, fmt.Errorf("failed to check tooling availability: %w", err)
	}

	return readiness.Input{
		AssignedUserID:    op.AssignedUserID,
		Edges:             checks,
		WorkCenterPeers:   peers,
		MaterialAvailable: material,
		ToolingAvailable:  tooling,
	}, nil
}

func reasonsToStrings(reasons []readiness.BlockedReason) []string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = string(r)
	}
	return out
}

// Ensure ReadinessServiceImpl implements the interface
var _ primary.ReadinessService = (*ReadinessServiceImpl)(nil)
