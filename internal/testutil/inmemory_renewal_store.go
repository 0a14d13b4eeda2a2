package testutil

import (
	"context"

	"github.com/resello/resello/internal/domain/renewal"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/types"
)

// InMemoryRenewalStore implements renewal.Repository. Like the real ledger
// it exposes no update or delete path.
type InMemoryRenewalStore struct {
	*InMemoryStore[*renewal.Log]
}

func NewInMemoryRenewalStore() *InMemoryRenewalStore {
	return &InMemoryRenewalStore{
		InMemoryStore: NewInMemoryStore(copyRenewalLog),
	}
}

func copyRenewalLog(l *renewal.Log) *renewal.Log {
	if l == nil {
		return nil
	}
	cp := *l
	return &cp
}

func (s *InMemoryRenewalStore) Create(ctx context.Context, log *renewal.Log) error {
	if log == nil {
		return ierr.NewError("renewal log cannot be nil").
			WithHint("Renewal log data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, log.ID, log)
}

func (s *InMemoryRenewalStore) Get(ctx context.Context, id string) (*renewal.Log, error) {
	l, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("renewal log not found").
			WithHintf("Renewal log with ID %s was not found", id).
			WithReportableDetails(map[string]any{"renewal_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return l, nil
}

func (s *InMemoryRenewalStore) ListBySeat(ctx context.Context, seatID string) ([]*renewal.Log, error) {
	return s.InMemoryStore.List(ctx, seatID,
		func(ctx context.Context, l *renewal.Log, filter interface{}) bool {
			return l.SeatID == filter.(string) && l.TenantID == types.GetTenantID(ctx)
		},
		func(i, j *renewal.Log) bool {
			if !i.PaidOn.Equal(j.PaidOn) {
				return i.PaidOn.After(j.PaidOn)
			}
			return i.CreatedAt.After(j.CreatedAt)
		})
}

// InMemoryPlatformRenewalStore implements renewal.PlatformRenewalRepository.
type InMemoryPlatformRenewalStore struct {
	*InMemoryStore[*renewal.PlatformRenewal]
}

func NewInMemoryPlatformRenewalStore() *InMemoryPlatformRenewalStore {
	return &InMemoryPlatformRenewalStore{
		InMemoryStore: NewInMemoryStore(copyPlatformRenewal),
	}
}

func copyPlatformRenewal(pr *renewal.PlatformRenewal) *renewal.PlatformRenewal {
	if pr == nil {
		return nil
	}
	cp := *pr
	return &cp
}

func (s *InMemoryPlatformRenewalStore) Create(ctx context.Context, pr *renewal.PlatformRenewal) error {
	if pr == nil {
		return ierr.NewError("platform renewal cannot be nil").
			WithHint("Platform renewal data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, pr.ID, pr)
}

func (s *InMemoryPlatformRenewalStore) ListBySubscription(ctx context.Context, subscriptionID string) ([]*renewal.PlatformRenewal, error) {
	return s.InMemoryStore.List(ctx, subscriptionID,
		func(ctx context.Context, pr *renewal.PlatformRenewal, filter interface{}) bool {
			return pr.SubscriptionID == filter.(string) && pr.TenantID == types.GetTenantID(ctx)
		},
		func(i, j *renewal.PlatformRenewal) bool {
			if !i.PaidOn.Equal(j.PaidOn) {
				return i.PaidOn.After(j.PaidOn)
			}
			return i.CreatedAt.After(j.CreatedAt)
		})
}
