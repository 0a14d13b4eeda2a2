package dto

import (
	"context"
	"time"

	"github.com/resello/resello/internal/domain/renewal"
	"github.com/resello/resello/internal/domain/subscription"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/types"
	"github.com/resello/resello/internal/validator"
)

type CreateSubscriptionRequest struct {
	PlanID         string     `json:"plan_id" validate:"required"`
	Label          string     `json:"label" validate:"required"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	DurationMonths int        `json:"duration_months"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
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

// ToSubscription builds the subscription with the paid-through date computed
// from the start date, using the same month arithmetic as the renewal paths.
func (r *CreateSubscriptionRequest) ToSubscription(ctx context.Context, platformID string, now time.Time) *subscription.Subscription {
	start := types.StartOfDay(now)
	if r.StartDate != nil {
		start = types.StartOfDay(*r.StartDate)
	}
	months := r.DurationMonths
	if months == 0 {
		months = types.DefaultRenewalMonths
	}
	return &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		PlanID:             r.PlanID,
		PlatformID:         platformID,
		Label:              r.Label,
		StartDate:          start,
		ActiveUntil:        types.AddMonths(start, months),
		SubscriptionStatus: types.SubscriptionStatusActive,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
}

type ChangePlanRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

func (r *ChangePlanRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type SubscriptionResponse struct {
	*subscription.Subscription
}

type PlatformLedgerResponse struct {
	Items []*renewal.PlatformRenewal `json:"items"`
	Total int                        `json:"total"`
}
