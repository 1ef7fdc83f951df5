package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/shopfloor/internal/core/dependency"
	"github.com/example/shopfloor/internal/core/operation"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// WorkOrderServiceImpl implements the WorkOrderService interface.
type WorkOrderServiceImpl struct {
	workOrderRepo secondary.WorkOrderRepository
	routingRepo   secondary.RoutingRepository
	operationRepo secondary.OperationRepository
	readiness     primary.ReadinessService
	queues        primary.QueueService
	depRepo       secondary.DependencyRepository
}

// NewWorkOrderService creates a new WorkOrderService with injected
// dependencies.
func NewWorkOrderService(
	workOrderRepo secondary.WorkOrderRepository,
	routingRepo secondary.RoutingRepository,
	operationRepo secondary.OperationRepository,
	depRepo secondary.DependencyRepository,
	readiness primary.ReadinessService,
	queues primary.QueueService,
) *WorkOrderServiceImpl {
	return &WorkOrderServiceImpl{
		workOrderRepo: workOrderRepo,
		routingRepo:   routingRepo,
		operationRepo: operationRepo,
		depRepo:       depRepo,
		readiness:     readiness,
		queues:        queues,
	}
}

// CreateWorkOrderWithRouting creates a work order, its routing, the
// routing's operations, and their dependency edges, then primes
// readiness and queues so the shop floor sees the new work immediately.
func (s *WorkOrderServiceImpl) CreateWorkOrderWithRouting(ctx context.Context, req primary.CreateWorkOrderRequest) (*primary.CreateWorkOrderResponse, error) {
	if len(req.Operations) == 0 {
		return nil, fmt.Errorf("a routing requires at least one operation")
	}
	if err := s.validateSpecs(ctx, req); err != nil {
		return nil, err
	}

	workOrderID, err := s.workOrderRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate work order ID: %w", err)
	}
	if err := s.workOrderRepo.Create(ctx, &secondary.WorkOrderRecord{
		ID:       workOrderID,
		PartID:   req.PartID,
		Status:   "todo",
		Priority: req.Priority,
		DueDate:  req.DueDate,
	}); err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}

	routingID, err := s.routingRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate routing ID: %w", err)
	}
	routingName := req.RoutingName
	if routingName == "" {
		routingName = "default"
	}
	if err := s.routingRepo.Create(ctx, &secondary.RoutingRecord{
		ID:          routingID,
		WorkOrderID: workOrderID,
		Name:        routingName,
	}); err != nil {
		return nil, fmt.Errorf("failed to create routing: %w", err)
	}

	// Create operations in sequence order; remember id per sequence so
	// dependency specs can be resolved.
	specs := make([]primary.OperationSpec, len(req.Operations))
	copy(specs, req.Operations)
	sort.Slice(specs, func(i, j int) bool { return specs[i].SequenceNumber < specs[j].SequenceNumber })

	idBySequence := make(map[int]string, len(specs))
	operationIDs := make([]string, 0, len(specs))
	workCenters := make(map[string]bool)
	for _, spec := range specs {
		opID, err := s.operationRepo.GetNextID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate operation ID: %w", err)
		}
		if err := s.operationRepo.Create(ctx, &secondary.OperationRecord{
			ID:               opID,
			RoutingID:        routingID,
			WorkOrderID:      workOrderID,
			OperationType:    spec.OperationType,
			WorkCenterID:     spec.WorkCenterID,
			AssignedUserID:   spec.AssignedUserID,
			SequenceNumber:   spec.SequenceNumber,
			Status:           string(operation.StatusPending),
			PlannedQty:       spec.PlannedQty,
			PlannedSetupTime: spec.PlannedSetupTime,
			PlannedRunTime:   spec.PlannedRunTime,
			Priority:         spec.Priority,
		}); err != nil {
			return nil, fmt.Errorf("failed to create operation: %w", err)
		}
		idBySequence[spec.SequenceNumber] = opID
		operationIDs = append(operationIDs, opID)
		workCenters[spec.WorkCenterID] = true
	}

	for _, dep := range req.Dependencies {
		depID, err := s.depRepo.GetNextID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate dependency ID: %w", err)
		}
		if err := s.depRepo.Create(ctx, &secondary.DependencyRecord{
			ID:                   depID,
			OperationID:          idBySequence[dep.SequenceNumber],
			DependsOnOperationID: idBySequence[dep.DependsOnSequenceNumber],
			DependencyType:       dep.DependencyType,
			LagTime:              dep.LagTime,
		}); err != nil {
			return nil, fmt.Errorf("failed to create dependency: %w", err)
		}
	}

	// Prime the derived state: every operation gets a verdict, every
	// touched work center gets a queue snapshot.
	for _, opID := range operationIDs {
		if _, err := s.readiness.CalculateReadiness(ctx, opID); err != nil {
			return nil, err
		}
	}
	for workCenterID := range workCenters {
		if err := s.queues.UpdateWorkCenterQueue(ctx, workCenterID); err != nil {
			return nil, err
		}
	}

	created, err := s.workOrderRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created work order: %w", err)
	}

	return &primary.CreateWorkOrderResponse{
		WorkOrderID:  workOrderID,
		RoutingID:    routingID,
		OperationIDs: operationIDs,
		WorkOrder:    recordToWorkOrder(created),
	}, nil
}

// GetWorkOrder retrieves a work order by ID.
func (s *WorkOrderServiceImpl) GetWorkOrder(ctx context.Context, workOrderID string) (*primary.WorkOrder, error) {
	record, err := s.workOrderRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	return recordToWorkOrder(record), nil
}

// ListWorkOrders lists work orders with optional filters.
func (s *WorkOrderServiceImpl) ListWorkOrders(ctx context.Context, filters primary.WorkOrderFilters) ([]*primary.WorkOrder, error) {
	records, err := s.workOrderRepo.List(ctx, secondary.WorkOrderFilters{
		Status: filters.Status,
		Limit:  filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}

	workOrders := make([]*primary.WorkOrder, len(records))
	for i, r := range records {
		workOrders[i] = recordToWorkOrder(r)
	}
	return workOrders, nil
}

// RefreshWorkOrderStatus re-derives the aggregate status from the work
// order's operations across all its routings.
func (s *WorkOrderServiceImpl) RefreshWorkOrderStatus(ctx context.Context, workOrderID string) (*primary.WorkOrder, error) {
	if _, err := s.workOrderRepo.GetByID(ctx, workOrderID); err != nil {
		return nil, err
	}

	operations, err := s.operationRepo.List(ctx, secondary.OperationFilters{WorkOrderID: workOrderID})
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	allDone := len(operations) > 0
	anyActive := false
	for _, op := range operations {
		status := operation.Status(op.Status)
		if !operation.Terminal(status) {
			allDone = false
		}
		if operation.Active(status) {
			anyActive = true
		}
	}

	switch {
	case allDone:
		if err := s.workOrderRepo.UpdateStatus(ctx, workOrderID, "completed", true); err != nil {
			return nil, err
		}
	case anyActive:
		if err := s.workOrderRepo.UpdateStatus(ctx, workOrderID, "in_progress", false); err != nil {
			return nil, err
		}
	}

	refreshed, err := s.workOrderRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	return recordToWorkOrder(refreshed), nil
}

// validateSpecs checks work centers, dependency references, and cycle
// freedom before anything is persisted.
func (s *WorkOrderServiceImpl) validateSpecs(ctx context.Context, req primary.CreateWorkOrderRequest) error {
	sequences := make(map[int]bool, len(req.Operations))
	for _, spec := range req.Operations {
		if sequences[spec.SequenceNumber] {
			return fmt.Errorf("duplicate sequence number %d in routing", spec.SequenceNumber)
		}
		sequences[spec.SequenceNumber] = true

		exists, err := s.operationRepo.WorkCenterExists(ctx, spec.WorkCenterID)
		if err != nil {
			return fmt.Errorf("failed to validate work center: %w", err)
		}
		if !exists {
			return fmt.Errorf("work center %s not found", spec.WorkCenterID)
		}
	}

	var edges []dependency.Edge
	for _, dep := range req.Dependencies {
		if !sequences[dep.SequenceNumber] || !sequences[dep.DependsOnSequenceNumber] {
			return fmt.Errorf("dependency references unknown sequence number (%d depends on %d)",
				dep.SequenceNumber, dep.DependsOnSequenceNumber)
		}
		if !dependency.Valid(dependency.Type(dep.DependencyType)) {
			return fmt.Errorf("unknown dependency type %q", dep.DependencyType)
		}
		candidate := dependency.Edge{
			OperationID: fmt.Sprintf("seq-%d", dep.SequenceNumber),
			DependsOnID: fmt.Sprintf("seq-%d", dep.DependsOnSequenceNumber),
			Type:        dependency.Type(dep.DependencyType),
			LagTime:     dep.LagTime,
		}
		if dependency.WouldCreateCycle(edges, candidate) {
			return fmt.Errorf("dependencies of the routing contain a cycle at sequence %d", dep.SequenceNumber)
		}
		edges = append(edges, candidate)
	}

	return nil
}

// recordToWorkOrder converts a persistence record to the port type.
func recordToWorkOrder(r *secondary.WorkOrderRecord) *primary.WorkOrder {
	return &primary.WorkOrder{
		ID:          r.ID,
		PartID:      r.PartID,
		PartNumber:  r.PartNumber,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
	}
}

// Ensure WorkOrderServiceImpl implements the interface
var _ primary.WorkOrderService = (*WorkOrderServiceImpl)(nil)
