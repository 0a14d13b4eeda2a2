package dto

import (
	"context"
	"time"

	"github.com/resello/resello/internal/domain/seat"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/types"
	"github.com/resello/resello/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateSeatRequest struct {
	SubscriptionID string          `json:"subscription_id" validate:"required"`
	ClientID       string          `json:"client_id" validate:"required"`
	ClientName     string          `json:"client_name"`
	CustomPrice    decimal.Decimal `json:"custom_price"`
	StartDate      *time.Time      `json:"start_date,omitempty"`
	DurationMonths int             `json:"duration_months"`
}

func (r *CreateSeatRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.CustomPrice.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("custom_price must be greater than zero").
			WithHint("Please provide the price this client pays per period").
			WithReportableDetails(map[string]any{
				"custom_price": r.CustomPrice,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.DurationMonths < 0 || r.DurationMonths > types.MaxRenewalMonths {
		return ierr.NewError("duration_months out of range").
			WithHintf("Duration must be between 1 and %d months", types.MaxRenewalMonths).
			WithReportableDetails(map[string]any{
				"duration_months": r.DurationMonths,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToSeat builds the seat with its initial paid-through date computed from
// the start date via the shared month arithmetic.
func (r *CreateSeatRequest) ToSeat(ctx context.Context, now time.Time) *seat.Seat {
	start := types.StartOfDay(now)
	if r.StartDate != nil {
		start = types.StartOfDay(*r.StartDate)
	}
	months := r.DurationMonths
	if months == 0 {
		months = types.DefaultRenewalMonths
	}
	return &seat.Seat{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SEAT),
		SubscriptionID: r.SubscriptionID,
		ClientID:       r.ClientID,
		ClientName:     r.ClientName,
		CustomPrice:    r.CustomPrice,
		ActiveUntil:    types.AddMonths(start, months),
		SeatStatus:     types.SeatStatusActive,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// SeatStatusChangeRequest is a tagged variant: the action names the
// transition and each action has its own required and forbidden fields, so a
// transition can never smuggle in fields belonging to another one.
type SeatStatusChangeRequest struct {
	Action types.SeatAction `json:"action" validate:"required"`

	// CustomPrice is required for update_price and forbidden otherwise.
	CustomPrice *decimal.Decimal `json:"custom_price,omitempty"`
}

func (r *SeatStatusChangeRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Action.Validate(); err != nil {
		return err
	}

	if r.Action == types.SeatActionUpdatePrice {
		if r.CustomPrice == nil {
			return ierr.NewError("custom_price is required").
				WithHint("Provide the new price for update_price").
				Mark(ierr.ErrValidation)
		}
		if r.CustomPrice.LessThanOrEqual(decimal.Zero) {
			return ierr.NewError("custom_price must be greater than zero").
				WithHint("Please provide a positive price").
				WithReportableDetails(map[string]any{
					"custom_price": *r.CustomPrice,
				}).
				Mark(ierr.ErrValidation)
		}
	} else if r.CustomPrice != nil {
		return ierr.NewError("custom_price is not allowed").
			WithHintf("custom_price can only be set with the %s action", types.SeatActionUpdatePrice).
			WithReportableDetails(map[string]any{
				"action": r.Action,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

type SeatResponse struct {
	*seat.Seat
}
