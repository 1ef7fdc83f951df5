// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the SINGLE POINT where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema: repository code referencing a column that does
// not exist fails immediately with "no such column" instead of drifting.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/shopfloor/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedWorkCenter inserts a test work center and returns its ID.
func seedWorkCenter(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "WC-001"
	}
	if name == "" {
		name = "Test Work Center " + id
	}
	_, err := db.Exec("INSERT INTO work_centers (id, name, status) VALUES (?, ?, 'active')", id, name)
	if err != nil {
		t.Fatalf("failed to seed work center: %v", err)
	}
	return id
}

// seedWorkOrder inserts a test work order and returns its ID.
func seedWorkOrder(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	if id == "" {
		id = "WO-001"
	}
	_, err := db.Exec("INSERT INTO work_orders (id, status, priority) VALUES (?, 'todo', 1)", id)
	if err != nil {
		t.Fatalf("failed to seed work order: %v", err)
	}
	return id
}

// seedRouting inserts a test routing under the given work order and
// returns its ID.
func seedRouting(t *testing.T, db *sql.DB, id, workOrderID string) string {
	t.Helper()
	if id == "" {
		id = "RT-001"
	}
	if workOrderID == "" {
		workOrderID = "WO-001"
	}
	_, err := db.Exec("INSERT INTO work_order_routings (id, work_order_id, name) VALUES (?, ?, 'standard')", id, workOrderID)
	if err != nil {
		t.Fatalf("failed to seed routing: %v", err)
	}
	return id
}

// seedOperation inserts a test operation and returns its ID. Assumes
// RT-001 and WC-001 unless the caller seeded others and passes them.
func seedOperation(t *testing.T, db *sql.DB, id, routingID, workCenterID string, sequence int) string {
	t.Helper()
	if id == "" {
		id = "OP-001"
	}
	if routingID == "" {
		routingID = "RT-001"
	}
	if workCenterID == "" {
		workCenterID = "WC-001"
	}
	_, err := db.Exec(
		`INSERT INTO operations
			(id, routing_id, operation_type, work_center_id, sequence_number, status, planned_qty, planned_run_time)
		VALUES (?, ?, 'machining', ?, ?, 'pending', 10, 30)`,
		id, routingID, workCenterID, sequence,
	)
	if err != nil {
		t.Fatalf("failed to seed operation: %v", err)
	}
	return id
}

// seedShop creates the WC-001 / WO-001 / RT-001 scaffolding most
// operation-level tests need.
func seedShop(t *testing.T, db *sql.DB) {
	t.Helper()
	seedWorkCenter(t, db, "WC-001", "")
	seedWorkOrder(t, db, "WO-001")
	seedRouting(t, db, "RT-001", "WO-001")
}
