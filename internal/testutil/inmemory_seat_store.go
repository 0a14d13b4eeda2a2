package testutil

import (
	"context"

	"github.com/resello/resello/internal/domain/seat"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/types"
)

// InMemorySeatStore implements seat.Repository
type InMemorySeatStore struct {
	*InMemoryStore[*seat.Seat]
}

func NewInMemorySeatStore() *InMemorySeatStore {
	return &InMemorySeatStore{
		InMemoryStore: NewInMemoryStore(copySeat),
	}
}

func copySeat(st *seat.Seat) *seat.Seat {
	if st == nil {
		return nil
	}
	cp := *st
	if st.LeftAt != nil {
		v := *st.LeftAt
		cp.LeftAt = &v
	}
	if st.RemainingDays != nil {
		v := *st.RemainingDays
		cp.RemainingDays = &v
	}
	return &cp
}

func (s *InMemorySeatStore) Create(ctx context.Context, st *seat.Seat) error {
	if st == nil {
		return ierr.NewError("seat cannot be nil").
			WithHint("Seat data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, st.ID, st)
}

func (s *InMemorySeatStore) Get(ctx context.Context, id string) (*seat.Seat, error) {
	st, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("seat not found").
			WithHintf("Seat with ID %s was not found", id).
			WithReportableDetails(map[string]any{"seat_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return st, nil
}

func (s *InMemorySeatStore) GetForUpdate(ctx context.Context, id string) (*seat.Seat, error) {
	return s.Get(ctx, id)
}

func (s *InMemorySeatStore) ListBySubscription(ctx context.Context, subscriptionID string) ([]*seat.Seat, error) {
	return s.InMemoryStore.List(ctx, subscriptionID,
		func(ctx context.Context, st *seat.Seat, filter interface{}) bool {
			return st.SubscriptionID == filter.(string) &&
				st.TenantID == types.GetTenantID(ctx) &&
				st.Status != types.StatusDeleted
		},
		func(i, j *seat.Seat) bool {
			return i.CreatedAt.After(j.CreatedAt)
		})
}

func (s *InMemorySeatStore) CountOccupied(ctx context.Context, subscriptionID string) (int, error) {
	seats, err := s.ListBySubscription(ctx, subscriptionID)
	if err != nil {
		return 0, err
	}
	return seat.CountOccupiedSeats(seats), nil
}

func (s *InMemorySeatStore) Update(ctx context.Context, st *seat.Seat) error {
	if err := s.InMemoryStore.Update(ctx, st.ID, st); err != nil {
		return ierr.NewError("seat not found").
			WithHintf("Seat with ID %s was not found", st.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
