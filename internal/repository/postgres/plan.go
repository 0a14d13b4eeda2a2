package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/resello/resello/internal/domain/plan"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/logger"
	"github.com/resello/resello/internal/postgres"
	"github.com/resello/resello/internal/types"
)

type planRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPlanRepository(db *postgres.DB, logger *logger.Logger) plan.Repository {
	return &planRepository{db: db, logger: logger}
}

func (r *planRepository) Create(ctx context.Context, p *plan.Plan) error {
	query := `
		INSERT INTO plans (
			id, platform_id, name, cost, max_seats, is_active,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :platform_id, :name, :cost, :max_seats, :is_active,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create plan").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*plan.Plan, error) {
	query := `
		SELECT * FROM plans
		WHERE id = $1 AND tenant_id = $2 AND status != $3
	`

	var p plan.Plan
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &p, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("plan not found").
			WithHint("Plan not found").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get plan").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *planRepository) List(ctx context.Context) ([]*plan.Plan, error) {
	query := `
		SELECT * FROM plans
		WHERE tenant_id = $1 AND status != $2
		ORDER BY created_at DESC
	`

	var plans []*plan.Plan
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &plans, query, types.GetTenantID(ctx), types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list plans").
			Mark(ierr.ErrDatabase)
	}
	return plans, nil
}

func (r *planRepository) Update(ctx context.Context, p *plan.Plan) error {
	p.UpdatedAt = time.Now().UTC()
	p.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE plans SET
			name = :name,
			cost = :cost,
			max_seats = :max_seats,
			is_active = :is_active,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update plan").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
