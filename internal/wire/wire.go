// Package wire provides dependency injection for the shopfloor
// application. It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/shopfloor/internal/adapters/availability"
	"github.com/example/shopfloor/internal/adapters/sqlite"
	"github.com/example/shopfloor/internal/app"
	"github.com/example/shopfloor/internal/db"
	"github.com/example/shopfloor/internal/ports/primary"
)

var (
	workCenterService primary.WorkCenterService
	workOrderService  primary.WorkOrderService
	operationService  primary.OperationService
	readinessService  primary.ReadinessService
	queueService      primary.QueueService
	once              sync.Once
)

// WorkCenterService returns the singleton WorkCenterService instance.
func WorkCenterService() primary.WorkCenterService {
	once.Do(initServices)
	return workCenterService
}

// WorkOrderService returns the singleton WorkOrderService instance.
func WorkOrderService() primary.WorkOrderService {
	once.Do(initServices)
	return workOrderService
}

// OperationService returns the singleton OperationService instance.
func OperationService() primary.OperationService {
	once.Do(initServices)
	return operationService
}

// ReadinessService returns the singleton ReadinessService instance.
func ReadinessService() primary.ReadinessService {
	once.Do(initServices)
	return readinessService
}

// QueueService returns the singleton QueueService instance.
func QueueService() primary.QueueService {
	once.Do(initServices)
	return queueService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	workCenterRepo := sqlite.NewWorkCenterRepository(database)
	workOrderRepo := sqlite.NewWorkOrderRepository(database)
	routingRepo := sqlite.NewRoutingRepository(database)
	operationRepo := sqlite.NewOperationRepository(database)
	dependencyRepo := sqlite.NewDependencyRepository(database)
	readinessRepo := sqlite.NewReadinessRepository(database)
	queueRepo := sqlite.NewQueueRepository(database)
	eventRepo := sqlite.NewEventRepository(database)

	notifier := sqlite.NewEventLogNotifier(eventRepo)
	checker := availability.NewAlwaysAvailable()

	// Services (primary ports implementation). The dispatcher sits between
	// the operation service and the derived-state services.
	readiness := app.NewReadinessService(operationRepo, dependencyRepo, readinessRepo, checker, notifier)
	queues := app.NewQueueService(operationRepo, queueRepo, readiness)
	dispatcher := app.NewDispatcher(operationRepo, dependencyRepo, readiness, queues)

	workCenterService = app.NewWorkCenterService(workCenterRepo)
	workOrderService = app.NewWorkOrderService(workOrderRepo, routingRepo, operationRepo, dependencyRepo, readiness, queues)
	operationService = app.NewOperationService(operationRepo, dependencyRepo, workOrderRepo, eventRepo, readiness, queues, dispatcher)
	readinessService = readiness
	queueService = queues
}
