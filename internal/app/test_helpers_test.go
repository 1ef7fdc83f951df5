package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockOperationRepository implements secondary.OperationRepository for testing.
type mockOperationRepository struct {
	operations         map[string]*secondary.OperationRecord
	missingWorkCenters map[string]bool
	nextID             int
	getErr             error
	listErr            error
	updateStatusErr    error
}

func newMockOperationRepository() *mockOperationRepository {
	return &mockOperationRepository{
		operations:         make(map[string]*secondary.OperationRecord),
		missingWorkCenters: make(map[string]bool),
	}
}

func (m *mockOperationRepository) Create(ctx context.Context, op *secondary.OperationRecord) error {
	m.operations[op.ID] = op
	return nil
}

func (m *mockOperationRepository) GetByID(ctx context.Context, id string) (*secondary.OperationRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if op, ok := m.operations[id]; ok {
		return op, nil
	}
	return nil, fmt.Errorf("operation %s not found", id)
}

func (m *mockOperationRepository) List(ctx context.Context, filters secondary.OperationFilters) ([]*secondary.OperationRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.OperationRecord
	for _, op := range m.operations {
		if filters.RoutingID != "" && op.RoutingID != filters.RoutingID {
			continue
		}
		if filters.WorkOrderID != "" && op.WorkOrderID != filters.WorkOrderID {
			continue
		}
		if filters.WorkCenterID != "" && op.WorkCenterID != filters.WorkCenterID {
			continue
		}
		if filters.Status != "" && op.Status != filters.Status {
			continue
		}
		result = append(result, op)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockOperationRepository) UpdateStatus(ctx context.Context, id, status string, stamps secondary.StatusStamps) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	op, ok := m.operations[id]
	if !ok {
		return fmt.Errorf("operation %s not found", id)
	}
	op.Status = status
	if stamps.SetStartedAt {
		op.StartedAt = "2026-08-30T08:00:00Z"
	}
	if stamps.SetSetupCompletedAt {
		op.SetupCompletedAt = "2026-08-30T08:15:00Z"
	}
	if stamps.SetCompletedAt {
		op.CompletedAt = "2026-08-30T09:00:00Z"
	}
	return nil
}

func (m *mockOperationRepository) UpdateQuantities(ctx context.Context, id string, completedQty, scrappedQty int) error {
	op, ok := m.operations[id]
	if !ok {
		return fmt.Errorf("operation %s not found", id)
	}
	op.CompletedQty = completedQty
	op.ScrappedQty = scrappedQty
	return nil
}

func (m *mockOperationRepository) UpdateActualTimes(ctx context.Context, id string, setupTime, runTime int) error {
	op, ok := m.operations[id]
	if !ok {
		return fmt.Errorf("operation %s not found", id)
	}
	op.ActualSetupTime = setupTime
	op.ActualRunTime = runTime
	return nil
}

func (m *mockOperationRepository) AssignUser(ctx context.Context, id, userID string) error {
	op, ok := m.operations[id]
	if !ok {
		return fmt.Errorf("operation %s not found", id)
	}
	op.AssignedUserID = userID
	return nil
}

func (m *mockOperationRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("OP-%03d", m.nextID), nil
}

func (m *mockOperationRepository) RoutingExists(ctx context.Context, routingID string) (bool, error) {
	return true, nil
}

func (m *mockOperationRepository) WorkCenterExists(ctx context.Context, workCenterID string) (bool, error) {
	return !m.missingWorkCenters[workCenterID], nil
}

// mockDependencyRepository implements secondary.DependencyRepository for
// testing. ListByRouting returns every edge; tests use a single routing.
type mockDependencyRepository struct {
	edges  []*secondary.DependencyRecord
	nextID int
}

func newMockDependencyRepository() *mockDependencyRepository {
	return &mockDependencyRepository{}
}

func (m *mockDependencyRepository) Create(ctx context.Context, dep *secondary.DependencyRecord) error {
	m.edges = append(m.edges, dep)
	return nil
}

func (m *mockDependencyRepository) ListForOperation(ctx context.Context, operationID string) ([]*secondary.DependencyRecord, error) {
	var result []*secondary.DependencyRecord
	for _, e := range m.edges {
		if e.OperationID == operationID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockDependencyRepository) ListDependents(ctx context.Context, dependsOnID string) ([]*secondary.DependencyRecord, error) {
	var result []*secondary.DependencyRecord
	for _, e := range m.edges {
		if e.DependsOnOperationID == dependsOnID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockDependencyRepository) ListByRouting(ctx context.Context, routingID string) ([]*secondary.DependencyRecord, error) {
	return m.edges, nil
}

func (m *mockDependencyRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("DEP-%03d", m.nextID), nil
}

// mockReadinessRepository implements secondary.ReadinessRepository for testing.
type mockReadinessRepository struct {
	records   map[string]*secondary.ReadinessRecord
	upsertErr error
}

func newMockReadinessRepository() *mockReadinessRepository {
	return &mockReadinessRepository{records: make(map[string]*secondary.ReadinessRecord)}
}

func (m *mockReadinessRepository) Get(ctx context.Context, operationID string) (*secondary.ReadinessRecord, error) {
	if rec, ok := m.records[operationID]; ok {
		return rec, nil
	}
	return nil, nil
}

func (m *mockReadinessRepository) Upsert(ctx context.Context, record *secondary.ReadinessRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.records[record.OperationID] = record
	return nil
}

// mockQueueRepository implements secondary.QueueRepository for testing.
type mockQueueRepository struct {
	queues     map[string][]*secondary.QueueEntryRecord
	replaceErr error
}

func newMockQueueRepository() *mockQueueRepository {
	return &mockQueueRepository{queues: make(map[string][]*secondary.QueueEntryRecord)}
}

func (m *mockQueueRepository) ReplaceForWorkCenter(ctx context.Context, workCenterID string, entries []*secondary.QueueEntryRecord) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.queues[workCenterID] = entries
	return nil
}

func (m *mockQueueRepository) ListForWorkCenter(ctx context.Context, workCenterID string) ([]*secondary.QueueEntryRecord, error) {
	return m.queues[workCenterID], nil
}

// mockWorkOrderRepository implements secondary.WorkOrderRepository for testing.
type mockWorkOrderRepository struct {
	workOrders map[string]*secondary.WorkOrderRecord
	nextID     int
}

func newMockWorkOrderRepository() *mockWorkOrderRepository {
	return &mockWorkOrderRepository{workOrders: make(map[string]*secondary.WorkOrderRecord)}
}

func (m *mockWorkOrderRepository) Create(ctx context.Context, wo *secondary.WorkOrderRecord) error {
	m.workOrders[wo.ID] = wo
	return nil
}

func (m *mockWorkOrderRepository) GetByID(ctx context.Context, id string) (*secondary.WorkOrderRecord, error) {
	if wo, ok := m.workOrders[id]; ok {
		return wo, nil
	}
	return nil, fmt.Errorf("work order %s not found", id)
}

func (m *mockWorkOrderRepository) List(ctx context.Context, filters secondary.WorkOrderFilters) ([]*secondary.WorkOrderRecord, error) {
	var result []*secondary.WorkOrderRecord
	for _, wo := range m.workOrders {
		if filters.Status != "" && wo.Status != filters.Status {
			continue
		}
		result = append(result, wo)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockWorkOrderRepository) UpdateStatus(ctx context.Context, id, status string, setCompleted bool) error {
	wo, ok := m.workOrders[id]
	if !ok {
		return fmt.Errorf("work order %s not found", id)
	}
	wo.Status = status
	if setCompleted {
		wo.CompletedAt = "2026-08-30T12:00:00Z"
	}
	return nil
}

func (m *mockWorkOrderRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("WO-%03d", m.nextID), nil
}

// mockRoutingRepository implements secondary.RoutingRepository for testing.
type mockRoutingRepository struct {
	routings map[string]*secondary.RoutingRecord
	nextID   int
}

func newMockRoutingRepository() *mockRoutingRepository {
	return &mockRoutingRepository{routings: make(map[string]*secondary.RoutingRecord)}
}

func (m *mockRoutingRepository) Create(ctx context.Context, routing *secondary.RoutingRecord) error {
	m.routings[routing.ID] = routing
	return nil
}

func (m *mockRoutingRepository) GetByID(ctx context.Context, id string) (*secondary.RoutingRecord, error) {
	if r, ok := m.routings[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("routing %s not found", id)
}

func (m *mockRoutingRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("RT-%03d", m.nextID), nil
}

// mockEventRepository implements secondary.EventRepository for testing.
type mockEventRepository struct {
	events []*secondary.EventRecord
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{}
}

func (m *mockEventRepository) Append(ctx context.Context, event *secondary.EventRecord) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventRepository) ListForOperation(ctx context.Context, operationID string) ([]*secondary.EventRecord, error) {
	var result []*secondary.EventRecord
	for _, e := range m.events {
		if e.OperationID == operationID {
			result = append(result, e)
		}
	}
	return result, nil
}

// mockWorkCenterRepository implements secondary.WorkCenterRepository for testing.
type mockWorkCenterRepository struct {
	workCenters map[string]*secondary.WorkCenterRecord
	nextID      int
}

func newMockWorkCenterRepository() *mockWorkCenterRepository {
	return &mockWorkCenterRepository{workCenters: make(map[string]*secondary.WorkCenterRecord)}
}

func (m *mockWorkCenterRepository) Create(ctx context.Context, wc *secondary.WorkCenterRecord) error {
	m.workCenters[wc.ID] = wc
	return nil
}

func (m *mockWorkCenterRepository) GetByID(ctx context.Context, id string) (*secondary.WorkCenterRecord, error) {
	if wc, ok := m.workCenters[id]; ok {
		return wc, nil
	}
	return nil, fmt.Errorf("work center %s not found", id)
}

func (m *mockWorkCenterRepository) List(ctx context.Context) ([]*secondary.WorkCenterRecord, error) {
	var result []*secondary.WorkCenterRecord
	for _, wc := range m.workCenters {
		result = append(result, wc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockWorkCenterRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("WC-%03d", m.nextID), nil
}

// mockNotifier implements secondary.Notifier for testing.
type mockNotifier struct {
	readyNotifications map[string]int
	highPriority       map[string]int
	notifyErr          error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{
		readyNotifications: make(map[string]int),
		highPriority:       make(map[string]int),
	}
}

func (m *mockNotifier) NotifyOperationReady(ctx context.Context, operationID string) error {
	if m.notifyErr != nil {
		return m.notifyErr
	}
	m.readyNotifications[operationID]++
	return nil
}

func (m *mockNotifier) NotifyHighPriorityOperation(ctx context.Context, operationID string) error {
	m.highPriority[operationID]++
	return nil
}

// mockAvailabilityChecker implements secondary.AvailabilityChecker for testing.
type mockAvailabilityChecker struct {
	material bool
	tooling  bool
	checkErr error
}

func newMockAvailabilityChecker() *mockAvailabilityChecker {
	return &mockAvailabilityChecker{material: true, tooling: true}
}

func (m *mockAvailabilityChecker) MaterialAvailable(ctx context.Context, operationID string) (bool, error) {
	if m.checkErr != nil {
		return false, m.checkErr
	}
	return m.material, nil
}

func (m *mockAvailabilityChecker) ToolingAvailable(ctx context.Context, operationID string) (bool, error) {
	return m.tooling, nil
}

// ============================================================================
// Test Engine
// ============================================================================

// testEngine wires the full service graph over mocks, mirroring the
// production wiring.
type testEngine struct {
	operationRepo  *mockOperationRepository
	dependencyRepo *mockDependencyRepository
	readinessRepo  *mockReadinessRepository
	queueRepo      *mockQueueRepository
	workOrderRepo  *mockWorkOrderRepository
	routingRepo    *mockRoutingRepository
	workCenterRepo *mockWorkCenterRepository
	eventRepo      *mockEventRepository
	notifier       *mockNotifier
	availability   *mockAvailabilityChecker

	readiness   *ReadinessServiceImpl
	queues      *QueueServiceImpl
	dispatcher  *Dispatcher
	operations  *OperationServiceImpl
	workOrders  *WorkOrderServiceImpl
	workCenters *WorkCenterServiceImpl
}

func newTestEngine() *testEngine {
	e := &testEngine{
		operationRepo:  newMockOperationRepository(),
		dependencyRepo: newMockDependencyRepository(),
		readinessRepo:  newMockReadinessRepository(),
		queueRepo:      newMockQueueRepository(),
		workOrderRepo:  newMockWorkOrderRepository(),
		routingRepo:    newMockRoutingRepository(),
		workCenterRepo: newMockWorkCenterRepository(),
		eventRepo:      newMockEventRepository(),
		notifier:       newMockNotifier(),
		availability:   newMockAvailabilityChecker(),
	}

	e.readiness = NewReadinessService(e.operationRepo, e.dependencyRepo, e.readinessRepo, e.availability, e.notifier)
	e.queues = NewQueueService(e.operationRepo, e.queueRepo, e.readiness)
	e.dispatcher = NewDispatcher(e.operationRepo, e.dependencyRepo, e.readiness, e.queues)
	e.operations = NewOperationService(e.operationRepo, e.dependencyRepo, e.workOrderRepo, e.eventRepo, e.readiness, e.queues, e.dispatcher)
	e.workOrders = NewWorkOrderService(e.workOrderRepo, e.routingRepo, e.operationRepo, e.dependencyRepo, e.readiness, e.queues)
	e.workCenters = NewWorkCenterService(e.workCenterRepo)
	return e
}

// seedOperation inserts an operation record with sensible defaults.
func (e *testEngine) seedOperation(id string, mutate func(*secondary.OperationRecord)) *secondary.OperationRecord {
	record := &secondary.OperationRecord{
		ID:             id,
		RoutingID:      "RT-001",
		WorkOrderID:    "WO-001",
		OperationType:  "machining",
		WorkCenterID:   "WC-001",
		AssignedUserID: "USR-001",
		SequenceNumber: 1,
		Status:         "pending",
		PlannedQty:     10,
		PlannedRunTime: 30,
		Priority:       1,
	}
	if mutate != nil {
		mutate(record)
	}
	e.operationRepo.operations[id] = record
	return record
}

// seedWorkOrder inserts a work order record.
func (e *testEngine) seedWorkOrder(id, status string) *secondary.WorkOrderRecord {
	record := &secondary.WorkOrderRecord{ID: id, Status: status, Priority: 1}
	e.workOrderRepo.workOrders[id] = record
	return record
}

// seedDependency inserts a dependency edge.
func (e *testEngine) seedDependency(operationID, dependsOnID, depType string, lag int) {
	e.dependencyRepo.edges = append(e.dependencyRepo.edges, &secondary.DependencyRecord{
		ID:                   fmt.Sprintf("DEP-%03d", len(e.dependencyRepo.edges)+1),
		OperationID:          operationID,
		DependsOnOperationID: dependsOnID,
		DependencyType:       depType,
		LagTime:              lag,
	})
}

var errBoom = errors.New("boom")
