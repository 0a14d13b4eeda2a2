package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/resello/resello/internal/domain/platform"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/logger"
	"github.com/resello/resello/internal/postgres"
	"github.com/resello/resello/internal/types"
)

type platformRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPlatformRepository(db *postgres.DB, logger *logger.Logger) platform.Repository {
	return &platformRepository{db: db, logger: logger}
}

func (r *platformRepository) Create(ctx context.Context, p *platform.Platform) error {
	query := `
		INSERT INTO platforms (
			id, name, website, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :website, :notes,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create platform").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *platformRepository) Get(ctx context.Context, id string) (*platform.Platform, error) {
	query := `
		SELECT * FROM platforms
		WHERE id = $1 AND tenant_id = $2 AND status != $3
	`

	var p platform.Platform
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &p, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("platform not found").
			WithHint("Platform not found").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get platform").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *platformRepository) List(ctx context.Context) ([]*platform.Platform, error) {
	query := `
		SELECT * FROM platforms
		WHERE tenant_id = $1 AND status != $2
		ORDER BY created_at DESC
	`

	var platforms []*platform.Platform
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &platforms, query, types.GetTenantID(ctx), types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list platforms").
			Mark(ierr.ErrDatabase)
	}
	return platforms, nil
}

func (r *platformRepository) Update(ctx context.Context, p *platform.Platform) error {
	p.UpdatedAt = time.Now().UTC()
	p.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE platforms SET
			name = :name,
			website = :website,
			notes = :notes,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update platform").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
