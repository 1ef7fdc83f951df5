package app

import (
	"context"
	"testing"

	"github.com/example/shopfloor/internal/ports/secondary"
)

func TestDispatcher_OperationNotFound(t *testing.T) {
	e := newTestEngine()

	if err := e.dispatcher.OperationStatusChanged(context.Background(), "OP-NONEXISTENT"); err == nil {
		t.Fatal("expected error for non-existent operation, got nil")
	}
}

func TestDispatcher_RebuildsQueueOfChangedOperation(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	e.seedOperation("OP-001", func(r *secondary.OperationRecord) { r.Status = "completed" })
	e.seedOperation("OP-002", func(r *secondary.OperationRecord) { r.SequenceNumber = 2 })

	if err := e.dispatcher.OperationStatusChanged(ctx, "OP-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	entries := e.queueRepo.queues["WC-001"]
	if len(entries) != 1 || entries[0].OperationID != "OP-002" {
		t.Errorf("expected WC-001 queue rebuilt with OP-002, got %+v", entries)
	}
}

// TestDispatcher_TwoOperationScenario walks the canonical two-operation
// routing: OP-001 (no dependencies) and OP-002 (finish_to_start on
// OP-001), both at WC-001. Completing OP-001 must flip OP-002 to ready,
// queue it at position 1, and fire its ready notification exactly once.
func TestDispatcher_TwoOperationScenario(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	e.seedWorkOrder("WO-001", "todo")
	e.seedOperation("OP-001", func(r *secondary.OperationRecord) { r.SequenceNumber = 1 })
	e.seedOperation("OP-002", func(r *secondary.OperationRecord) { r.SequenceNumber = 2 })
	e.seedDependency("OP-002", "OP-001", "finish_to_start", 0)

	// Initial evaluation: OP-001 ready, OP-002 blocked on its predecessor.
	check1, err := e.readiness.CalculateReadiness(ctx, "OP-001")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !check1.IsReady {
		t.Fatalf("expected OP-001 ready, got blocked: %v", check1.BlockedReasons)
	}
	check2, err := e.readiness.CalculateReadiness(ctx, "OP-002")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if check2.IsReady || !containsReason(check2.BlockedReasons, "waiting_predecessor") {
		t.Fatalf("expected OP-002 blocked on predecessor, got %+v", check2)
	}

	// Run OP-001 through its lifecycle.
	for _, status := range []string{"setup", "running", "completed"} {
		if _, err := e.operations.UpdateOperationStatus(ctx, "OP-001", status, ""); err != nil {
			t.Fatalf("transition to %s: expected no error, got %v", status, err)
		}
	}

	stored := e.readinessRepo.records["OP-002"]
	if stored == nil || !stored.IsReady {
		t.Fatalf("expected OP-002 recalculated to ready, got %+v", stored)
	}

	entries := e.queueRepo.queues["WC-001"]
	if len(entries) != 1 {
		t.Fatalf("expected 1 queue entry, got %d", len(entries))
	}
	if entries[0].OperationID != "OP-002" || entries[0].QueuePosition != 1 {
		t.Errorf("expected OP-002 at position 1, got %s at %d", entries[0].OperationID, entries[0].QueuePosition)
	}

	if got := e.notifier.readyNotifications["OP-002"]; got != 1 {
		t.Errorf("expected exactly one ready notification for OP-002, got %d", got)
	}
}
