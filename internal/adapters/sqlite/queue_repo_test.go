package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/shopfloor/internal/adapters/sqlite"
	"github.com/example/shopfloor/internal/ports/secondary"
)

func TestQueueRepository_ReplaceAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewQueueRepository(db)
	ctx := context.Background()
	seedShop(t, db)
	seedOperation(t, db, "OP-001", "", "", 1)
	seedOperation(t, db, "OP-002", "", "", 2)

	entries := []*secondary.QueueEntryRecord{
		{ID: "q-1", OperationID: "OP-002", QueuePosition: 1, Priority: 8},
		{ID: "q-2", OperationID: "OP-001", QueuePosition: 2, Priority: 1, EstimatedWaitTime: 40},
	}
	if err := repo.ReplaceForWorkCenter(ctx, "WC-001", entries); err != nil {
		t.Fatalf("ReplaceForWorkCenter failed: %v", err)
	}

	listed, err := repo.ListForWorkCenter(ctx, "WC-001")
	if err != nil {
		t.Fatalf("ListForWorkCenter failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(listed))
	}
	if listed[0].OperationID != "OP-002" || listed[0].QueuePosition != 1 {
		t.Errorf("expected OP-002 at position 1, got %s at %d", listed[0].OperationID, listed[0].QueuePosition)
	}
	if listed[1].EstimatedWaitTime != 40 {
		t.Errorf("expected wait 40 at position 2, got %d", listed[1].EstimatedWaitTime)
	}
}

func TestQueueRepository_ReplaceDropsOldSnapshot(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewQueueRepository(db)
	ctx := context.Background()
	seedShop(t, db)
	seedOperation(t, db, "OP-001", "", "", 1)
	seedOperation(t, db, "OP-002", "", "", 2)

	first := []*secondary.QueueEntryRecord{
		{ID: "q-1", OperationID: "OP-001", QueuePosition: 1, Priority: 1},
		{ID: "q-2", OperationID: "OP-002", QueuePosition: 2, Priority: 1},
	}
	if err := repo.ReplaceForWorkCenter(ctx, "WC-001", first); err != nil {
		t.Fatalf("ReplaceForWorkCenter failed: %v", err)
	}

	second := []*secondary.QueueEntryRecord{
		{ID: "q-3", OperationID: "OP-002", QueuePosition: 1, Priority: 1},
	}
	if err := repo.ReplaceForWorkCenter(ctx, "WC-001", second); err != nil {
		t.Fatalf("ReplaceForWorkCenter failed: %v", err)
	}

	listed, err := repo.ListForWorkCenter(ctx, "WC-001")
	if err != nil {
		t.Fatalf("ListForWorkCenter failed: %v", err)
	}
	if len(listed) != 1 || listed[0].OperationID != "OP-002" {
		t.Errorf("expected only OP-002 after replace, got %+v", listed)
	}
}

func TestQueueRepository_ReplaceWithEmptyClearsQueue(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewQueueRepository(db)
	ctx := context.Background()
	seedShop(t, db)
	seedOperation(t, db, "OP-001", "", "", 1)

	entries := []*secondary.QueueEntryRecord{
		{ID: "q-1", OperationID: "OP-001", QueuePosition: 1, Priority: 1},
	}
	if err := repo.ReplaceForWorkCenter(ctx, "WC-001", entries); err != nil {
		t.Fatalf("ReplaceForWorkCenter failed: %v", err)
	}

	if err := repo.ReplaceForWorkCenter(ctx, "WC-001", nil); err != nil {
		t.Fatalf("ReplaceForWorkCenter failed: %v", err)
	}

	listed, err := repo.ListForWorkCenter(ctx, "WC-001")
	if err != nil {
		t.Fatalf("ListForWorkCenter failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected empty queue, got %d entries", len(listed))
	}
}

func TestQueueRepository_SnapshotsAreIndependentPerWorkCenter(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewQueueRepository(db)
	ctx := context.Background()
	seedShop(t, db)
	seedWorkCenter(t, db, "WC-002", "Lathe 1")
	seedOperation(t, db, "OP-001", "", "WC-001", 1)
	seedOperation(t, db, "OP-002", "", "WC-002", 2)

	if err := repo.ReplaceForWorkCenter(ctx, "WC-001", []*secondary.QueueEntryRecord{
		{ID: "q-1", OperationID: "OP-001", QueuePosition: 1, Priority: 1},
	}); err != nil {
		t.Fatalf("ReplaceForWorkCenter failed: %v", err)
	}
	if err := repo.ReplaceForWorkCenter(ctx, "WC-002", []*secondary.QueueEntryRecord{
		{ID: "q-2", OperationID: "OP-002", QueuePosition: 1, Priority: 1},
	}); err != nil {
		t.Fatalf("ReplaceForWorkCenter failed: %v", err)
	}

	if err := repo.ReplaceForWorkCenter(ctx, "WC-001", nil); err != nil {
		t.Fatalf("ReplaceForWorkCenter failed: %v", err)
	}

	other, err := repo.ListForWorkCenter(ctx, "WC-002")
	if err != nil {
		t.Fatalf("ListForWorkCenter failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("expected WC-002 snapshot untouched, got %d entries", len(other))
	}
}
