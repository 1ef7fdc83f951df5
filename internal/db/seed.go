package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with a small demo shop: three work
// centers, two operators, and one work order whose routing exercises
// finish_to_start and start_to_start dependencies.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC().Format(time.RFC3339)
	due := time.Now().UTC().Add(7 * 24 * time.Hour).Format(time.RFC3339)

	users := []struct{ id, name, role string }{
		{"USR-001", "Dana Reeves", "operator"},
		{"USR-002", "Miguel Ortega", "operator"},
		{"USR-003", "Priya Shah", "supervisor"},
	}
	for _, u := range users {
		if _, err := database.Exec(
			"INSERT INTO users (id, name, role, created_at) VALUES (?, ?, ?, ?)",
			u.id, u.name, u.role, now,
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	workCenters := []struct{ id, name, desc string }{
		{"WC-001", "CNC Mill 1", "3-axis vertical mill"},
		{"WC-002", "Lathe 1", "Turning center"},
		{"WC-003", "Inspection", "CMM and manual inspection"},
	}
	for _, wc := range workCenters {
		if _, err := database.Exec(
			"INSERT INTO work_centers (id, name, description, status, created_at) VALUES (?, ?, ?, 'active', ?)",
			wc.id, wc.name, wc.desc, now,
		); err != nil {
			return fmt.Errorf("seed work centers: %w", err)
		}
	}

	if _, err := database.Exec(
		"INSERT INTO parts (id, part_number, name, created_at) VALUES ('PART-001', 'BRKT-2041', 'Mounting Bracket', ?)",
		now,
	); err != nil {
		return fmt.Errorf("seed parts: %w", err)
	}

	if _, err := database.Exec(
		"INSERT INTO work_orders (id, part_id, status, priority, due_date, created_at) VALUES ('WO-001', 'PART-001', 'todo', 5, ?, ?)",
		due, now,
	); err != nil {
		return fmt.Errorf("seed work orders: %w", err)
	}

	if _, err := database.Exec(
		"INSERT INTO work_order_routings (id, work_order_id, name, created_at) VALUES ('RT-001', 'WO-001', 'bracket-standard', ?)",
		now,
	); err != nil {
		return fmt.Errorf("seed routings: %w", err)
	}

	operations := []struct {
		id, opType, workCenter, user string
		seq, setup, run, priority    int
	}{
		{"OP-001", "machining", "WC-001", "USR-001", 1, 15, 45, 5},
		{"OP-002", "turning", "WC-002", "USR-002", 2, 10, 30, 5},
		{"OP-003", "deburring", "WC-002", "USR-002", 3, 5, 20, 5},
		{"OP-004", "inspection", "WC-003", "USR-003", 4, 0, 15, 5},
	}
	for _, op := range operations {
		if _, err := database.Exec(
			`INSERT INTO operations
				(id, routing_id, operation_type, work_center_id, assigned_user_id, sequence_number,
				 status, planned_qty, planned_setup_time, planned_run_time, priority, created_at)
			VALUES (?, 'RT-001', ?, ?, ?, ?, 'pending', 20, ?, ?, ?, ?)`,
			op.id, op.opType, op.workCenter, op.user, op.seq, op.setup, op.run, op.priority, now,
		); err != nil {
			return fmt.Errorf("seed operations: %w", err)
		}
	}

	dependencies := []struct {
		id, opID, dependsOn, depType string
		lag                          int
	}{
		{"DEP-001", "OP-002", "OP-001", "finish_to_start", 0},
		{"DEP-002", "OP-003", "OP-002", "start_to_start", 10},
		{"DEP-003", "OP-004", "OP-003", "finish_to_start", 0},
	}
	for _, dep := range dependencies {
		if _, err := database.Exec(
			`INSERT INTO operation_dependencies
				(id, operation_id, depends_on_operation_id, dependency_type, lag_time, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			dep.id, dep.opID, dep.dependsOn, dep.depType, dep.lag, now,
		); err != nil {
			return fmt.Errorf("seed dependencies: %w", err)
		}
	}

	return nil
}
