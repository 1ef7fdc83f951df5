package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/shopfloor/internal/core/dependency"
	"github.com/example/shopfloor/internal/core/operation"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// OperationServiceImpl implements the OperationService interface.
type OperationServiceImpl struct {
	operationRepo  secondary.OperationRepository
	dependencyRepo secondary.DependencyRepository
	workOrderRepo  secondary.WorkOrderRepository
	eventRepo      secondary.EventRepository
	readiness      primary.ReadinessService
	queues         primary.QueueService
	dispatcher     *Dispatcher
}

// NewOperationService creates a new OperationService with injected
// dependencies.
func NewOperationService(
	operationRepo secondary.OperationRepository,
	dependencyRepo secondary.DependencyRepository,
	workOrderRepo secondary.WorkOrderRepository,
	eventRepo secondary.EventRepository,
	readiness primary.ReadinessService,
	queues primary.QueueService,
	dispatcher *Dispatcher,
) *OperationServiceImpl {
	return &OperationServiceImpl{
		operationRepo:  operationRepo,
		dependencyRepo: dependencyRepo,
		workOrderRepo:  workOrderRepo,
		eventRepo:      eventRepo,
		readiness:      readiness,
		queues:         queues,
		dispatcher:     dispatcher,
	}
}

// UpdateOperationStatus moves an operation through its lifecycle.
// The transition table is enforced; an illegal jump fails before anything
// is persisted. After the write the owning work order status is
// re-derived and the change is propagated to dependents and the queue.
func (s *OperationServiceImpl) UpdateOperationStatus(ctx context.Context, operationID, newStatus, notes string) (*primary.Operation, error) {
	record, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, err
	}

	guard := operation.CanUpdateStatus(operation.TransitionContext{
		OperationID: operationID,
		From:        operation.Status(record.Status),
		To:          operation.Status(newStatus),
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	to := operation.Status(newStatus)
	stamps := secondary.StatusStamps{
		SetStartedAt:        to == operation.StatusSetup && record.StartedAt == "",
		SetSetupCompletedAt: to == operation.StatusRunning && record.SetupCompletedAt == "",
		SetCompletedAt:      to == operation.StatusCompleted,
	}

	if err := s.operationRepo.UpdateStatus(ctx, operationID, newStatus, stamps); err != nil {
		return nil, err
	}

	detail := fmt.Sprintf("%s -> %s", record.Status, newStatus)
	if notes != "" {
		detail += ": " + notes
	}
	if err := s.appendEvent(ctx, operationID, "status_changed", detail); err != nil {
		return nil, err
	}

	if err := s.rollupWorkOrder(ctx, record.RoutingID, record.WorkOrderID); err != nil {
		return nil, err
	}

	if err := s.dispatcher.OperationStatusChanged(ctx, operationID); err != nil {
		return nil, err
	}

	updated, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated operation: %w", err)
	}
	return recordToOperation(updated), nil
}

// UpdateOperationQuantity updates reported quantities. Planned-quantity
// tolerance is not enforced; only non-negativity is.
func (s *OperationServiceImpl) UpdateOperationQuantity(ctx context.Context, operationID string, completedQty, scrappedQty int) error {
	guard := operation.CanUpdateQuantity(operation.QuantityContext{
		OperationID:  operationID,
		CompletedQty: completedQty,
		ScrappedQty:  scrappedQty,
	})
	if err := guard.Error(); err != nil {
		return err
	}

	if _, err := s.operationRepo.GetByID(ctx, operationID); err != nil {
		return err
	}

	return s.operationRepo.UpdateQuantities(ctx, operationID, completedQty, scrappedQty)
}

// RecordActualTimes records operator-reported actual setup and run
// minutes. Rejected while the operation is pending or skipped.
func (s *OperationServiceImpl) RecordActualTimes(ctx context.Context, operationID string, setupTime, runTime int) error {
	record, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return err
	}

	guard := operation.CanRecordActuals(operation.ActualsContext{
		OperationID: operationID,
		Status:      operation.Status(record.Status),
		SetupTime:   setupTime,
		RunTime:     runTime,
	})
	if err := guard.Error(); err != nil {
		return err
	}

	if err := s.operationRepo.UpdateActualTimes(ctx, operationID, setupTime, runTime); err != nil {
		return err
	}

	detail := fmt.Sprintf("setup %dm, run %dm", setupTime, runTime)
	return s.appendEvent(ctx, operationID, "actuals_recorded", detail)
}

// AssignUserToOperation assigns an operator, then recalculates the
// operation's readiness and rebuilds its work center queue since the
// operator gate may have flipped.
func (s *OperationServiceImpl) AssignUserToOperation(ctx context.Context, operationID, userID string) error {
	record, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return err
	}

	if err := s.operationRepo.AssignUser(ctx, operationID, userID); err != nil {
		return err
	}

	if _, err := s.readiness.CalculateReadiness(ctx, operationID); err != nil {
		return err
	}

	if record.WorkCenterID != "" {
		if err := s.queues.UpdateWorkCenterQueue(ctx, record.WorkCenterID); err != nil {
			return err
		}
	}

	return nil
}

// AddDependency creates a precedence edge between two operations of the
// same routing. Edges that would close a cycle are rejected.
func (s *OperationServiceImpl) AddDependency(ctx context.Context, req primary.AddDependencyRequest) error {
	if !dependency.Valid(dependency.Type(req.DependencyType)) {
		return fmt.Errorf("unknown dependency type %q", req.DependencyType)
	}

	dependent, err := s.operationRepo.GetByID(ctx, req.OperationID)
	if err != nil {
		return err
	}
	predecessor, err := s.operationRepo.GetByID(ctx, req.DependsOnOperationID)
	if err != nil {
		return err
	}
	if dependent.RoutingID != predecessor.RoutingID {
		return fmt.Errorf("operations %s and %s belong to different routings", req.OperationID, req.DependsOnOperationID)
	}

	existing, err := s.dependencyRepo.ListByRouting(ctx, dependent.RoutingID)
	if err != nil {
		return fmt.Errorf("failed to load routing dependencies: %w", err)
	}

	candidate := dependency.Edge{
		OperationID: req.OperationID,
		DependsOnID: req.DependsOnOperationID,
		Type:        dependency.Type(req.DependencyType),
		LagTime:     req.LagTime,
	}
	if dependency.WouldCreateCycle(edgesFromRecords(existing), candidate) {
		return fmt.Errorf("dependency %s -> %s would create a cycle", req.DependsOnOperationID, req.OperationID)
	}

	nextID, err := s.dependencyRepo.GetNextID(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate dependency ID: %w", err)
	}

	if err := s.dependencyRepo.Create(ctx, &secondary.DependencyRecord{
		ID:                   nextID,
		OperationID:          req.OperationID,
		DependsOnOperationID: req.DependsOnOperationID,
		DependencyType:       req.DependencyType,
		LagTime:              req.LagTime,
	}); err != nil {
		return fmt.Errorf("failed to create dependency: %w", err)
	}

	// The new edge may block the dependent; refresh its verdict.
	if _, err := s.readiness.CalculateReadiness(ctx, req.OperationID); err != nil {
		return err
	}

	return nil
}

// GetOperation retrieves an operation by ID.
func (s *OperationServiceImpl) GetOperation(ctx context.Context, operationID string) (*primary.Operation, error) {
	record, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, err
	}
	return recordToOperation(record), nil
}

// ListOperations lists operations with optional filters.
func (s *OperationServiceImpl) ListOperations(ctx context.Context, filters primary.OperationFilters) ([]*primary.Operation, error) {
	records, err := s.operationRepo.List(ctx, secondary.OperationFilters{
		RoutingID:    filters.RoutingID,
		WorkCenterID: filters.WorkCenterID,
		Status:       filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	operations := make([]*primary.Operation, len(records))
	for i, r := range records {
		operations[i] = recordToOperation(r)
	}
	return operations, nil
}

// rollupWorkOrder re-derives the owning work order's status from its
// routing's operations. Runs on every transition so the work order shows
// in_progress as soon as any operation starts.
func (s *OperationServiceImpl) rollupWorkOrder(ctx context.Context, routingID, workOrderID string) error {
	siblings, err := s.operationRepo.List(ctx, secondary.OperationFilters{RoutingID: routingID})
	if err != nil {
		return fmt.Errorf("failed to list routing operations: %w", err)
	}

	allDone := true
	anyActive := false
	for _, sibling := range siblings {
		status := operation.Status(sibling.Status)
		if !operation.Terminal(status) {
			allDone = false
		}
		if operation.Active(status) {
			anyActive = true
		}
	}

	switch {
	case allDone:
		return s.workOrderRepo.UpdateStatus(ctx, workOrderID, "completed", true)
	case anyActive:
		return s.workOrderRepo.UpdateStatus(ctx, workOrderID, "in_progress", false)
	}
	return nil
}

func (s *OperationServiceImpl) appendEvent(ctx context.Context, operationID, eventType, detail string) error {
	err := s.eventRepo.Append(ctx, &secondary.EventRecord{
		ID:          uuid.NewString(),
		OperationID: operationID,
		EventType:   eventType,
		Detail:      detail,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to append %s event: %w", eventType, err)
	}
	return nil
}

func edgesFromRecords(records []*secondary.DependencyRecord) []dependency.Edge {
	edges := make([]dependency.Edge, len(records))
	for i, r := range records {
		edges[i] = dependency.Edge{
			OperationID: r.OperationID,
			DependsOnID: r.DependsOnOperationID,
			Type:        dependency.Type(r.DependencyType),
			LagTime:     r.LagTime,
		}
	}
	return edges
}

// recordToOperation converts a persistence record to the port type.
func recordToOperation(r *secondary.OperationRecord) *primary.Operation {
	return &primary.Operation{
		ID:               r.ID,
		RoutingID:        r.RoutingID,
		WorkOrderID:      r.WorkOrderID,
		OperationType:    r.OperationType,
		WorkCenterID:     r.WorkCenterID,
		AssignedUserID:   r.AssignedUserID,
		SequenceNumber:   r.SequenceNumber,
		Status:           r.Status,
		PlannedQty:       r.PlannedQty,
		CompletedQty:     r.CompletedQty,
		ScrappedQty:      r.ScrappedQty,
		PlannedSetupTime: r.PlannedSetupTime,
		PlannedRunTime:   r.PlannedRunTime,
		ActualSetupTime:  r.ActualSetupTime,
		ActualRunTime:    r.ActualRunTime,
		Priority:         r.Priority,
		StartedAt:        r.StartedAt,
		SetupCompletedAt: r.SetupCompletedAt,
		CompletedAt:      r.CompletedAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// Ensure OperationServiceImpl implements the interface
var _ primary.OperationService = (*OperationServiceImpl)(nil)
