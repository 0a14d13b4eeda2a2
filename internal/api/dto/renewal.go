package dto

import (
	"time"

	"github.com/resello/resello/internal/domain/renewal"
	"github.com/resello/resello/internal/domain/seat"
	"github.com/resello/resello/internal/domain/subscription"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/types"
	"github.com/resello/resello/internal/validator"
	"github.com/shopspring/decimal"
)

type RenewSeatRequest struct {
	// AmountPaid defaults to the seat's current custom price. The single
	// seat path never multiplies by months; the caller sends the total.
	AmountPaid *decimal.Decimal `json:"amount_paid,omitempty"`

	// Months is signed: positive extends, negative corrects. Defaults to +1.
	Months *int `json:"months,omitempty"`

	Notes string `json:"notes"`
}

func (r *RenewSeatRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := types.ValidateRenewalMonths(r.GetMonths()); err != nil {
		return err
	}
	if r.AmountPaid != nil && r.AmountPaid.IsNegative() {
		return ierr.NewError("amount_paid cannot be negative").
			WithHint("Please provide a non-negative amount").
			WithReportableDetails(map[string]any{
				"amount_paid": *r.AmountPaid,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *RenewSeatRequest) GetMonths() int {
	if r.Months == nil {
		return types.DefaultRenewalMonths
	}
	return *r.Months
}

type BulkRenewItem struct {
	SeatID string `json:"seat_id" validate:"required"`

	// AmountPaid defaults to custom price multiplied by the shared months,
	// unlike the single seat path.
	AmountPaid *decimal.Decimal `json:"amount_paid,omitempty"`
}

type BulkRenewRequest struct {
	// Months is shared by every seat in the batch and must be positive:
	// bulk has no correction mode.
	Months int             `json:"months" validate:"required"`
	Items  []BulkRenewItem `json:"items" validate:"required,min=1,dive"`
	Notes  string          `json:"notes"`
}

func (r *BulkRenewRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Months <= 0 {
		return ierr.NewError("months must be positive").
			WithHint("Bulk renewal only extends; use a single-seat correction instead").
			WithReportableDetails(map[string]any{
				"months": r.Months,
			}).
			Mark(ierr.ErrValidation)
	}
	if err := types.ValidateRenewalMonths(r.Months); err != nil {
		return err
	}
	for _, item := range r.Items {
		if item.AmountPaid != nil && item.AmountPaid.IsNegative() {
			return ierr.NewError("amount_paid cannot be negative").
				WithHint("Please provide non-negative amounts").
				WithReportableDetails(map[string]any{
					"seat_id":     item.SeatID,
					"amount_paid": *item.AmountPaid,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

type RenewPlatformRequest struct {
	// AmountPaid defaults to the plan's cost.
	AmountPaid *decimal.Decimal `json:"amount_paid,omitempty"`
}

func (r *RenewPlatformRequest) Validate() error {
	if r.AmountPaid != nil && r.AmountPaid.IsNegative() {
		return ierr.NewError("amount_paid cannot be negative").
			WithHint("Please provide a non-negative amount").
			WithReportableDetails(map[string]any{
				"amount_paid": *r.AmountPaid,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RenewalResponse carries the committed seat and ledger row plus the
// non-fatal anomalies the presentation layer labels as warnings.
type RenewalResponse struct {
	Seat *seat.Seat   `json:"seat"`
	Log  *renewal.Log `json:"log"`

	// Lapsed is true when the seat's expiry was already in the past and the
	// extension anchored to today instead of stacking.
	Lapsed bool `json:"lapsed"`

	// ExpiredAfter is true when the new expiry is in the past, which a
	// correction may legitimately cause.
	ExpiredAfter bool `json:"expired_after"`
}

type BulkRenewalResponse struct {
	RenewedCount int                `json:"renewed_count"`
	Items        []*RenewalResponse `json:"items"`
}

type PlatformRenewalResponse struct {
	Subscription *subscription.Subscription `json:"subscription"`
	Renewal      *renewal.PlatformRenewal   `json:"renewal"`
}

// RenewalPreview mirrors the committed outcome of a renewal without writing
// anything. It must be computed by the same date math as the commit path so
// the preview can never disagree with the result.
type RenewalPreview struct {
	SeatID          string          `json:"seat_id"`
	CurrentExpiry   time.Time       `json:"current_expiry"`
	NewExpiry       time.Time       `json:"new_expiry"`
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	SuggestedAmount decimal.Decimal `json:"suggested_amount"`
	Lapsed          bool            `json:"lapsed"`
	ExpiredAfter    bool            `json:"expired_after"`
}

type SeatLedgerResponse struct {
	Items []*renewal.Log `json:"items"`
	Total int            `json:"total"`
}
