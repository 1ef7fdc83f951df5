package db

// SchemaSQL is the complete schema for fresh installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests
// use this schema via GetSchemaSQL(): if repository code references a
// column that doesn't exist here, tests fail immediately with
// "no such column" instead of drifting from production.
const SchemaSQL = `
-- Users (machine operators and supervisors)
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('operator', 'supervisor')) DEFAULT 'operator',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Work centers (machines or stations; one operation runs at a time)
CREATE TABLE IF NOT EXISTS work_centers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	description TEXT,
	status TEXT NOT NULL CHECK(status IN ('active', 'inactive', 'maintenance')) DEFAULT 'active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Parts (what work orders produce)
CREATE TABLE IF NOT EXISTS parts (
	id TEXT PRIMARY KEY,
	part_number TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	description TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Work orders (a quantity of a part to produce by a due date)
CREATE TABLE IF NOT EXISTS work_orders (
	id TEXT PRIMARY KEY,
	part_id TEXT,
	status TEXT NOT NULL CHECK(status IN ('draft', 'todo', 'manufacturing', 'in_progress', 'quality_control', 'hold', 'paused', 'ship', 'completed', 'scrapped')) DEFAULT 'todo',
	priority INTEGER NOT NULL DEFAULT 1,
	due_date DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	started_at DATETIME,
	completed_at DATETIME,
	FOREIGN KEY (part_id) REFERENCES parts(id)
);

-- Routings (the ordered set of operations that produces a work order)
CREATE TABLE IF NOT EXISTS work_order_routings (
	id TEXT PRIMARY KEY,
	work_order_id TEXT NOT NULL,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (work_order_id) REFERENCES work_orders(id) ON DELETE CASCADE
);

-- Operations (one manufacturing step at one work center)
CREATE TABLE IF NOT EXISTS operations (
	id TEXT PRIMARY KEY,
	routing_id TEXT NOT NULL,
	operation_type TEXT NOT NULL,
	work_center_id TEXT NOT NULL,
	assigned_user_id TEXT,
	sequence_number INTEGER NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('pending', 'setup', 'running', 'paused', 'completed', 'skipped')) DEFAULT 'pending',
	planned_qty INTEGER NOT NULL DEFAULT 0,
	completed_qty INTEGER NOT NULL DEFAULT 0,
	scrapped_qty INTEGER NOT NULL DEFAULT 0,
	planned_setup_time INTEGER NOT NULL DEFAULT 0,
	planned_run_time INTEGER NOT NULL DEFAULT 0,
	actual_setup_time INTEGER NOT NULL DEFAULT 0,
	actual_run_time INTEGER NOT NULL DEFAULT 0,
	priority INTEGER NOT NULL DEFAULT 1,
	started_at DATETIME,
	setup_completed_at DATETIME,
	completed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (routing_id) REFERENCES work_order_routings(id) ON DELETE CASCADE,
	FOREIGN KEY (work_center_id) REFERENCES work_centers(id),
	FOREIGN KEY (assigned_user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_operations_routing ON operations(routing_id);
CREATE INDEX IF NOT EXISTS idx_operations_work_center ON operations(work_center_id);
CREATE INDEX IF NOT EXISTS idx_operations_status ON operations(status);

-- Dependency edges between operations of the same routing
CREATE TABLE IF NOT EXISTS operation_dependencies (
	id TEXT PRIMARY KEY,
	operation_id TEXT NOT NULL,
	depends_on_operation_id TEXT NOT NULL,
	dependency_type TEXT NOT NULL CHECK(dependency_type IN ('finish_to_start', 'start_to_start', 'finish_to_finish', 'start_to_finish')) DEFAULT 'finish_to_start',
	lag_time INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (operation_id) REFERENCES operations(id) ON DELETE CASCADE,
	FOREIGN KEY (depends_on_operation_id) REFERENCES operations(id) ON DELETE CASCADE,
	UNIQUE(operation_id, depends_on_operation_id)
);

CREATE INDEX IF NOT EXISTS idx_dependencies_operation ON operation_dependencies(operation_id);
CREATE INDEX IF NOT EXISTS idx_dependencies_depends_on ON operation_dependencies(depends_on_operation_id);

-- Derived readiness cache, one row per evaluated operation
CREATE TABLE IF NOT EXISTS operation_readiness (
	operation_id TEXT PRIMARY KEY,
	is_ready INTEGER NOT NULL DEFAULT 0,
	blocked_reasons TEXT NOT NULL DEFAULT '[]',
	estimated_wait_time INTEGER NOT NULL DEFAULT 0,
	last_calculated DATETIME NOT NULL,
	FOREIGN KEY (operation_id) REFERENCES operations(id) ON DELETE CASCADE
);

-- Derived queue snapshot, fully replaced on every rebuild
CREATE TABLE IF NOT EXISTS work_center_queue (
	id TEXT PRIMARY KEY,
	work_center_id TEXT NOT NULL,
	operation_id TEXT NOT NULL,
	queue_position INTEGER NOT NULL,
	priority INTEGER NOT NULL DEFAULT 1,
	estimated_wait_time INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (work_center_id) REFERENCES work_centers(id),
	FOREIGN KEY (operation_id) REFERENCES operations(id) ON DELETE CASCADE,
	UNIQUE(work_center_id, operation_id),
	UNIQUE(work_center_id, queue_position)
);

CREATE INDEX IF NOT EXISTS idx_queue_work_center ON work_center_queue(work_center_id);

-- Audit trail of operation lifecycle and notification events
CREATE TABLE IF NOT EXISTS operation_events (
	id TEXT PRIMARY KEY,
	operation_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	detail TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (operation_id) REFERENCES operations(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_events_operation ON operation_events(operation_id);
`

// schemaVersion is bumped when SchemaSQL changes shape.
const schemaVersion = 1

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec("INSERT OR IGNORE INTO schema_version (version) VALUES (?)", schemaVersion)
	return err
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
