package seat

import (
	ierr "github.com/resello/resello/internal/errors"
)

// CheckCapacity enforces a plan's seat ceiling. maxSeats nil means
// unlimited; occupied counts seats in {active, paused} since a paused seat
// is reserved, not freed.
func CheckCapacity(maxSeats *int, occupied int, adding int) error {
	if maxSeats == nil {
		return nil
	}
	if occupied+adding > *maxSeats {
		return ierr.NewError("seat capacity exceeded").
			WithHintf("Plan allows at most %d seats, %d already occupied", *maxSeats, occupied).
			WithReportableDetails(map[string]any{
				"current": occupied,
				"max":     *maxSeats,
				"adding":  adding,
			}).
			Mark(ierr.ErrCapacityExceeded)
	}
	return nil
}
