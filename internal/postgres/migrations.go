package postgres

import (
	"context"
	"fmt"
)

// schema is applied on startup when postgres.automigrate is enabled. The
// renewal ledger tables intentionally have no updated_* columns beyond the
// audit pair: rows are insert-only.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS platforms (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		website TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		tenant_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		platform_id TEXT NOT NULL REFERENCES platforms (id),
		name TEXT NOT NULL,
		cost NUMERIC(20, 8) NOT NULL,
		max_seats INTEGER,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		tenant_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id TEXT PRIMARY KEY,
		plan_id TEXT NOT NULL REFERENCES plans (id),
		platform_id TEXT NOT NULL REFERENCES platforms (id),
		label TEXT NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		active_until TIMESTAMPTZ NOT NULL,
		subscription_status TEXT NOT NULL,
		tenant_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS seats (
		id TEXT PRIMARY KEY,
		subscription_id TEXT NOT NULL REFERENCES subscriptions (id),
		client_id TEXT NOT NULL,
		client_name TEXT NOT NULL DEFAULT '',
		custom_price NUMERIC(20, 8) NOT NULL,
		active_until TIMESTAMPTZ NOT NULL,
		seat_status TEXT NOT NULL,
		left_at TIMESTAMPTZ,
		remaining_days INTEGER,
		tenant_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_seats_subscription_id ON seats (subscription_id)`,
	`CREATE TABLE IF NOT EXISTS renewal_logs (
		id TEXT PRIMARY KEY,
		seat_id TEXT NOT NULL REFERENCES seats (id),
		reference TEXT NOT NULL,
		amount_paid NUMERIC(20, 8) NOT NULL,
		expected_amount NUMERIC(20, 8) NOT NULL,
		period_start TIMESTAMPTZ NOT NULL,
		period_end TIMESTAMPTZ NOT NULL,
		paid_on TIMESTAMPTZ NOT NULL,
		due_on TIMESTAMPTZ NOT NULL,
		months_renewed INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		tenant_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_renewal_logs_seat_id ON renewal_logs (seat_id)`,
	`CREATE TABLE IF NOT EXISTS platform_renewals (
		id TEXT PRIMARY KEY,
		subscription_id TEXT NOT NULL REFERENCES subscriptions (id),
		reference TEXT NOT NULL,
		amount_paid NUMERIC(20, 8) NOT NULL,
		period_start TIMESTAMPTZ NOT NULL,
		period_end TIMESTAMPTZ NOT NULL,
		paid_on TIMESTAMPTZ NOT NULL,
		tenant_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_platform_renewals_subscription_id ON platform_renewals (subscription_id)`,
}

// Migrate applies the schema statements in order.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}
	db.logger.Infow("schema migration complete", "statements", len(schema))
	return nil
}
