package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/shopfloor/internal/core/operation"
	"github.com/example/shopfloor/internal/core/queue"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// QueueServiceImpl implements the QueueService interface.
// Queue rebuilds are read-evaluate-replace; a per-work-center mutex
// serializes them so concurrent status changes cannot interleave their
// snapshots.
type QueueServiceImpl struct {
	operationRepo secondary.OperationRepository
	queueRepo     secondary.QueueRepository
	readiness     primary.ReadinessService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewQueueService creates a new QueueService with injected dependencies.
func NewQueueService(
	operationRepo secondary.OperationRepository,
	queueRepo secondary.QueueRepository,
	readiness primary.ReadinessService,
) *QueueServiceImpl {
	return &QueueServiceImpl{
		operationRepo: operationRepo,
		queueRepo:     queueRepo,
		readiness:     readiness,
		locks:         make(map[string]*sync.Mutex),
	}
}

// GetReadyOperations returns the ready subset of the work center's
// pending operations, sorted by priority descending, work order due date
// ascending (missing dates last), then sequence number.
func (s *QueueServiceImpl) GetReadyOperations(ctx context.Context, workCenterID string) ([]*primary.Operation, error) {
	records, err := s.readyRecords(ctx, workCenterID)
	if err != nil {
		return nil, err
	}

	operations := make([]*primary.Operation, len(records))
	for i, r := range records {
		operations[i] = recordToOperation(r)
	}
	return operations, nil
}

// UpdateWorkCenterQueue fully rebuilds the queue snapshot for a work
// center: one row per ready operation, 1-based positions, cumulative
// wait estimates.
func (s *QueueServiceImpl) UpdateWorkCenterQueue(ctx context.Context, workCenterID string) error {
	lock := s.lockFor(workCenterID)
	lock.Lock()
	defer lock.Unlock()

	records, err := s.readyRecords(ctx, workCenterID)
	if err != nil {
		return err
	}

	entries := queue.BuildEntries(toCandidates(records))
	now := time.Now().UTC().Format(time.RFC3339)

	rows := make([]*secondary.QueueEntryRecord, len(entries))
	for i, e := range entries {
		rows[i] = &secondary.QueueEntryRecord{
			ID:                uuid.NewString(),
			WorkCenterID:      workCenterID,
			OperationID:       e.OperationID,
			QueuePosition:     e.Position,
			Priority:          e.Priority,
			EstimatedWaitTime: e.EstimatedWaitTime,
			CreatedAt:         now,
		}
	}

	if err := s.queueRepo.ReplaceForWorkCenter(ctx, workCenterID, rows); err != nil {
		return fmt.Errorf("failed to replace queue for %s: %w", workCenterID, err)
	}
	return nil
}

// GetQueue returns the current snapshot in position order.
func (s *QueueServiceImpl) GetQueue(ctx context.Context, workCenterID string) ([]*primary.QueueEntry, error) {
	rows, err := s.queueRepo.ListForWorkCenter(ctx, workCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue for %s: %w", workCenterID, err)
	}

	entries := make([]*primary.QueueEntry, len(rows))
	for i, r := range rows {
		entries[i] = &primary.QueueEntry{
			WorkCenterID:      r.WorkCenterID,
			OperationID:       r.OperationID,
			QueuePosition:     r.QueuePosition,
			Priority:          r.Priority,
			EstimatedWaitTime: r.EstimatedWaitTime,
		}
	}
	return entries, nil
}

// NextOperation returns the queue head, or nil when the queue is empty.
func (s *QueueServiceImpl) NextOperation(ctx context.Context, workCenterID string) (*primary.QueueEntry, error) {
	entries, err := s.GetQueue(ctx, workCenterID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// readyRecords evaluates readiness for every pending operation at the
// work center and returns the ready subset in execution order.
func (s *QueueServiceImpl) readyRecords(ctx context.Context, workCenterID string) ([]*secondary.OperationRecord, error) {
	exists, err := s.operationRepo.WorkCenterExists(ctx, workCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate work center: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("work center %s not found", workCenterID)
	}

	pending, err := s.operationRepo.List(ctx, secondary.OperationFilters{
		WorkCenterID: workCenterID,
		Status:       string(operation.StatusPending),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending operations: %w", err)
	}

	byID := make(map[string]*secondary.OperationRecord, len(pending))
	var ready []*secondary.OperationRecord
	for _, op := range pending {
		check, err := s.readiness.CalculateReadiness(ctx, op.ID)
		if err != nil {
			return nil, err
		}
		if check.IsReady {
			ready = append(ready, op)
			byID[op.ID] = op
		}
	}

	ordered := queue.Order(toCandidates(ready))
	result := make([]*secondary.OperationRecord, len(ordered))
	for i, c := range ordered {
		result[i] = byID[c.OperationID]
	}
	return result, nil
}

func toCandidates(records []*secondary.OperationRecord) []queue.Candidate {
	candidates := make([]queue.Candidate, len(records))
	for i, r := range records {
		var due time.Time
		if r.WorkOrderDueDate != "" {
			if parsed, err := time.Parse(time.RFC3339, r.WorkOrderDueDate); err == nil {
				due = parsed
			}
		}
		candidates[i] = queue.Candidate{
			OperationID:      r.ID,
			Priority:         r.Priority,
			DueDate:          due,
			SequenceNumber:   r.SequenceNumber,
			PlannedSetupTime: r.PlannedSetupTime,
			PlannedRunTime:   r.PlannedRunTime,
		}
	}
	return candidates
}

// lockFor returns the mutex serializing rebuilds of one work center.
func (s *QueueServiceImpl) lockFor(workCenterID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[workCenterID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[workCenterID] = lock
	}
	return lock
}

// Ensure QueueServiceImpl implements the interface
var _ primary.QueueService = (*QueueServiceImpl)(nil)
