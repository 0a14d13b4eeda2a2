package seat

import (
	"time"

	"github.com/resello/resello/internal/types"
	"github.com/shopspring/decimal"
)

// Seat is the assignment of one client to one subscription: who pays, what
// they pay, and until when their access runs.
//
// Exactly one of ActiveUntil / RemainingDays is authoritative at any time:
// while the seat is active its expiry date rules and RemainingDays is nil;
// while paused the frozen day count rules and ActiveUntil is stale until a
// resume recomputes it.
type Seat struct {
	ID             string `db:"id" json:"id"`
	SubscriptionID string `db:"subscription_id" json:"subscription_id"`
	ClientID       string `db:"client_id" json:"client_id"`
	ClientName     string `db:"client_name" json:"client_name"`

	// CustomPrice is what this specific client pays per period. Seats on the
	// same subscription may pay different prices.
	CustomPrice decimal.Decimal `db:"custom_price" json:"custom_price"`

	// ActiveUntil is the date this client's paid access lapses.
	ActiveUntil time.Time `db:"active_until" json:"active_until"`

	SeatStatus types.SeatStatus `db:"seat_status" json:"seat_status"`

	// LeftAt is when the seat was paused or cancelled, nil while active.
	LeftAt *time.Time `db:"left_at" json:"left_at,omitempty"`

	// RemainingDays is the count of paid service days frozen at the moment
	// of pausing, restored verbatim on resume. Only meaningful while paused.
	RemainingDays *int `db:"remaining_days" json:"remaining_days,omitempty"`

	types.BaseModel
}

// IsCancelled reports whether the seat has reached its terminal state.
func (s *Seat) IsCancelled() bool {
	return s.SeatStatus == types.SeatStatusCancelled
}

// IsLapsed reports whether the seat's paid access has already run out as of
// the given day.
func (s *Seat) IsLapsed(today time.Time) bool {
	return types.StartOfDay(s.ActiveUntil).Before(types.StartOfDay(today))
}
