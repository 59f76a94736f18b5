package repository

import (
	"context"
	"fmt"
)

// createRepairsTable defines the canonical schema. The CHECK constraints
// mirror the priority/status enumerations; description and assigned_to are
// the legacy columns still present in rows from the earliest generation.
const createRepairsTable = `CREATE TABLE IF NOT EXISTS repairs (
	id SERIAL PRIMARY KEY,
	title TEXT,
	customer_name TEXT,
	repair_type TEXT DEFAULT 'General Maintenance',
	priority TEXT NOT NULL DEFAULT 'Medium' CHECK (priority IN ('Low', 'Medium', 'High', 'Emergency')),
	status TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'In Progress', 'Completed', 'On Hold')),
	estimated_cost NUMERIC(10,2),
	date_added TEXT,
	description TEXT,
	assigned_to TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the repairs table when missing. Safe to run on
// every start; an already-correct table is a no-op.
func (r *RepairRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRepairsTable); err != nil {
		return fmt.Errorf("ensure repairs schema: %w", err)
	}
	return nil
}

// MigrateLegacy copies rows from the repair_jobs twin table of an earlier
// generation into repairs, applying the same field fallbacks the read path
// uses, then renames the twin so the copy runs exactly once. A database
// without the twin is a no-op.
func (r *RepairRepository) MigrateLegacy(ctx context.Context) (int64, error) {
	var exists bool
	const probe = `SELECT to_regclass('repair_jobs') IS NOT NULL`
	if err := r.db.GetContext(ctx, &exists, probe); err != nil {
		return 0, fmt.Errorf("probe legacy table: %w", err)
	}
	if !exists {
		return 0, nil
	}

	const copyRows = `INSERT INTO repairs (title, customer_name, repair_type, priority, status, estimated_cost, created_at, updated_at)
SELECT title, customer_name, COALESCE(repair_type, 'General Maintenance'), priority, status, estimated_cost, created_at, updated_at
FROM repair_jobs`
	result, err := r.db.ExecContext(ctx, copyRows)
	if err != nil {
		return 0, fmt.Errorf("copy legacy rows: %w", err)
	}
	migrated, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("copy legacy rows: %w", err)
	}

	const retire = `ALTER TABLE repair_jobs RENAME TO repair_jobs_migrated`
	if _, err := r.db.ExecContext(ctx, retire); err != nil {
		return migrated, fmt.Errorf("retire legacy table: %w", err)
	}
	return migrated, nil
}
