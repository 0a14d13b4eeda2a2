package types

import (
	ierr "github.com/resello/resello/internal/errors"
	"github.com/samber/lo"
)

// Status is a type for the row status of a resource in the database.
// This tracks the lifecycle of the row itself and is independent of any
// domain status the entity may carry (e.g. a seat's SeatStatus).
type Status string

const (
	StatusPublished Status = "published"
	StatusDeleted   Status = "deleted"
	StatusArchived  Status = "archived"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Validate() error {
	allowed := []Status{StatusPublished, StatusDeleted, StatusArchived}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid status").
			WithHint("Invalid status").
			WithReportableDetails(map[string]any{
				"status":           s,
				"allowed_statuses": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SubscriptionStatus is the status of the reseller's own account slot on a
// platform. A paused subscription is still owned, it is just not being resold.
type SubscriptionStatus string

const (
	SubscriptionStatusActive SubscriptionStatus = "active"
	SubscriptionStatusPaused SubscriptionStatus = "paused"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusActive,
		SubscriptionStatusPaused,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Invalid subscription status").
			WithReportableDetails(map[string]any{
				"status":           s,
				"allowed_statuses": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SeatStatus is the lifecycle status of a client's seat on a subscription.
// Cancelled is terminal: the row is kept as a soft delete so the seat's
// renewal history stays queryable, but no further lifecycle mutation is
// permitted.
type SeatStatus string

const (
	SeatStatusActive    SeatStatus = "active"
	SeatStatusPaused    SeatStatus = "paused"
	SeatStatusCancelled SeatStatus = "cancelled"
)

func (s SeatStatus) String() string {
	return string(s)
}

func (s SeatStatus) Validate() error {
	allowed := []SeatStatus{
		SeatStatusActive,
		SeatStatusPaused,
		SeatStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid seat status").
			WithHint("Invalid seat status").
			WithReportableDetails(map[string]any{
				"status":           s,
				"allowed_statuses": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OccupiesCapacity reports whether a seat in this status counts against the
// plan's seat ceiling. Paused seats are reserved, not freed.
func (s SeatStatus) OccupiesCapacity() bool {
	return s == SeatStatusActive || s == SeatStatusPaused
}
