package seat

import "context"

// Repository defines the interface for seat persistence
type Repository interface {
	Create(ctx context.Context, seat *Seat) error
	Get(ctx context.Context, id string) (*Seat, error)
	// GetForUpdate loads the seat with a row lock so two concurrent renewals
	// cannot both read the same stale expiry. Must be called inside a
	// transaction.
	GetForUpdate(ctx context.Context, id string) (*Seat, error)
	ListBySubscription(ctx context.Context, subscriptionID string) ([]*Seat, error)
	// CountOccupied returns the number of seats on the subscription whose
	// status still occupies plan capacity (active or paused).
	CountOccupied(ctx context.Context, subscriptionID string) (int, error)
	Update(ctx context.Context, seat *Seat) error
}

// CountOccupiedSeats is a helper for implementations that load seats and
// count in memory.
func CountOccupiedSeats(seats []*Seat) int {
	count := 0
	for _, s := range seats {
		if s.SeatStatus.OccupiesCapacity() {
			count++
		}
	}
	return count
}
