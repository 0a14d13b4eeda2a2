package testutil

import (
	"context"

	"github.com/resello/resello/internal/domain/platform"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/types"
)

// InMemoryPlatformStore implements platform.Repository
type InMemoryPlatformStore struct {
	*InMemoryStore[*platform.Platform]
}

func NewInMemoryPlatformStore() *InMemoryPlatformStore {
	return &InMemoryPlatformStore{
		InMemoryStore: NewInMemoryStore(copyPlatform),
	}
}

func copyPlatform(p *platform.Platform) *platform.Platform {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func (s *InMemoryPlatformStore) Create(ctx context.Context, p *platform.Platform) error {
	if p == nil {
		return ierr.NewError("platform cannot be nil").
			WithHint("Platform data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, p)
}

func (s *InMemoryPlatformStore) Get(ctx context.Context, id string) (*platform.Platform, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("platform not found").
			WithHintf("Platform with ID %s was not found", id).
			WithReportableDetails(map[string]any{"platform_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (s *InMemoryPlatformStore) List(ctx context.Context) ([]*platform.Platform, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, p *platform.Platform, _ interface{}) bool {
			return p.TenantID == types.GetTenantID(ctx) && p.Status != types.StatusDeleted
		},
		func(i, j *platform.Platform) bool {
			return i.CreatedAt.After(j.CreatedAt)
		})
}

func (s *InMemoryPlatformStore) Update(ctx context.Context, p *platform.Platform) error {
	if err := s.InMemoryStore.Update(ctx, p.ID, p); err != nil {
		return ierr.NewError("platform not found").
			WithHintf("Platform with ID %s was not found", p.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
