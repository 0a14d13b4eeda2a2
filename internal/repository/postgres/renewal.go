package postgres

import (
	"context"
	"database/sql"

	"github.com/resello/resello/internal/domain/renewal"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/logger"
	"github.com/resello/resello/internal/postgres"
	"github.com/resello/resello/internal/types"
)

// renewalRepository is insert-only by construction: there is no UPDATE or
// DELETE statement anywhere in this file, matching the append-only ledger
// contract.
type renewalRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRenewalRepository(db *postgres.DB, logger *logger.Logger) renewal.Repository {
	return &renewalRepository{db: db, logger: logger}
}

func (r *renewalRepository) Create(ctx context.Context, log *renewal.Log) error {
	query := `
		INSERT INTO renewal_logs (
			id, seat_id, reference, amount_paid, expected_amount,
			period_start, period_end, paid_on, due_on, months_renewed, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :seat_id, :reference, :amount_paid, :expected_amount,
			:period_start, :period_end, :paid_on, :due_on, :months_renewed, :notes,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to append renewal log").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *renewalRepository) Get(ctx context.Context, id string) (*renewal.Log, error) {
	query := `
		SELECT * FROM renewal_logs
		WHERE id = $1 AND tenant_id = $2
	`

	var log renewal.Log
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &log, query, id, types.GetTenantID(ctx))
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("renewal log not found").
			WithHint("Renewal log not found").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get renewal log").
			Mark(ierr.ErrDatabase)
	}
	return &log, nil
}

func (r *renewalRepository) ListBySeat(ctx context.Context, seatID string) ([]*renewal.Log, error) {
	query := `
		SELECT * FROM renewal_logs
		WHERE seat_id = $1 AND tenant_id = $2
		ORDER BY paid_on DESC, created_at DESC
	`

	var logs []*renewal.Log
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &logs, query, seatID, types.GetTenantID(ctx)); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list renewal logs").
			Mark(ierr.ErrDatabase)
	}
	return logs, nil
}

// platformRenewalRepository mirrors the seat ledger: insert-only.
type platformRenewalRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPlatformRenewalRepository(db *postgres.DB, logger *logger.Logger) renewal.PlatformRenewalRepository {
	return &platformRenewalRepository{db: db, logger: logger}
}

func (r *platformRenewalRepository) Create(ctx context.Context, pr *renewal.PlatformRenewal) error {
	query := `
		INSERT INTO platform_renewals (
			id, subscription_id, reference, amount_paid,
			period_start, period_end, paid_on,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :subscription_id, :reference, :amount_paid,
			:period_start, :period_end, :paid_on,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, pr); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to append platform renewal").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *platformRenewalRepository) ListBySubscription(ctx context.Context, subscriptionID string) ([]*renewal.PlatformRenewal, error) {
	query := `
		SELECT * FROM platform_renewals
		WHERE subscription_id = $1 AND tenant_id = $2
		ORDER BY paid_on DESC, created_at DESC
	`

	var items []*renewal.PlatformRenewal
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &items, query, subscriptionID, types.GetTenantID(ctx)); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list platform renewals").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}
