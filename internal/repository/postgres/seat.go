package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/resello/resello/internal/domain/seat"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/logger"
	"github.com/resello/resello/internal/postgres"
	"github.com/resello/resello/internal/types"
)

type seatRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSeatRepository(db *postgres.DB, logger *logger.Logger) seat.Repository {
	return &seatRepository{db: db, logger: logger}
}

func (r *seatRepository) Create(ctx context.Context, s *seat.Seat) error {
	query := `
		INSERT INTO seats (
			id, subscription_id, client_id, client_name, custom_price,
			active_until, seat_status, left_at, remaining_days,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :subscription_id, :client_id, :client_name, :custom_price,
			:active_until, :seat_status, :left_at, :remaining_days,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create seat").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *seatRepository) Get(ctx context.Context, id string) (*seat.Seat, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate locks the seat row for the remainder of the current
// transaction so two concurrent renewals cannot both read the same stale
// expiry and each write a ledger row computed from it.
func (r *seatRepository) GetForUpdate(ctx context.Context, id string) (*seat.Seat, error) {
	return r.get(ctx, id, true)
}

func (r *seatRepository) get(ctx context.Context, id string, forUpdate bool) (*seat.Seat, error) {
	query := `
		SELECT * FROM seats
		WHERE id = $1 AND tenant_id = $2 AND status != $3
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var s seat.Seat
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &s, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("seat not found").
			WithHint("Seat not found").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get seat").
			Mark(ierr.ErrDatabase)
	}
	return &s, nil
}

func (r *seatRepository) ListBySubscription(ctx context.Context, subscriptionID string) ([]*seat.Seat, error) {
	query := `
		SELECT * FROM seats
		WHERE subscription_id = $1 AND tenant_id = $2 AND status != $3
		ORDER BY created_at DESC
	`

	var seats []*seat.Seat
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &seats, query, subscriptionID, types.GetTenantID(ctx), types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list seats").
			Mark(ierr.ErrDatabase)
	}
	return seats, nil
}

func (r *seatRepository) CountOccupied(ctx context.Context, subscriptionID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM seats
		WHERE subscription_id = $1 AND tenant_id = $2 AND status != $3
		  AND seat_status IN ($4, $5)
	`

	var count int
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &count, query,
		subscriptionID,
		types.GetTenantID(ctx),
		types.StatusDeleted,
		types.SeatStatusActive,
		types.SeatStatusPaused,
	)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count occupied seats").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *seatRepository) Update(ctx context.Context, s *seat.Seat) error {
	s.UpdatedAt = time.Now().UTC()
	s.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE seats SET
			client_name = :client_name,
			custom_price = :custom_price,
			active_until = :active_until,
			seat_status = :seat_status,
			left_at = :left_at,
			remaining_days = :remaining_days,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update seat").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
