package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/resello/resello/internal/domain/subscription"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/logger"
	"github.com/resello/resello/internal/postgres"
	"github.com/resello/resello/internal/types"
)

type subscriptionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSubscriptionRepository(db *postgres.DB, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, logger: logger}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, plan_id, platform_id, label, start_date, active_until, subscription_status,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :plan_id, :platform_id, :label, :start_date, :active_until, :subscription_status,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate locks the subscription row for the remainder of the current
// transaction so concurrent platform renewals serialize.
func (r *subscriptionRepository) GetForUpdate(ctx context.Context, id string) (*subscription.Subscription, error) {
	return r.get(ctx, id, true)
}

func (r *subscriptionRepository) get(ctx context.Context, id string, forUpdate bool) (*subscription.Subscription, error) {
	query := `
		SELECT * FROM subscriptions
		WHERE id = $1 AND tenant_id = $2 AND status != $3
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var sub subscription.Subscription
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &sub, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription").
			Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}

func (r *subscriptionRepository) List(ctx context.Context) ([]*subscription.Subscription, error) {
	query := `
		SELECT * FROM subscriptions
		WHERE tenant_id = $1 AND status != $2
		ORDER BY created_at DESC
	`

	var subs []*subscription.Subscription
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &subs, query, types.GetTenantID(ctx), types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}
	return subs, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	sub.UpdatedAt = time.Now().UTC()
	sub.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE subscriptions SET
			plan_id = :plan_id,
			platform_id = :platform_id,
			label = :label,
			active_until = :active_until,
			subscription_status = :subscription_status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
