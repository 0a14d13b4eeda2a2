package dto

import (
	"context"

	"github.com/resello/resello/internal/domain/plan"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/types"
	"github.com/resello/resello/internal/validator"
	"github.com/shopspring/decimal"
)

type CreatePlanRequest struct {
	PlatformID string          `json:"platform_id" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	Cost       decimal.Decimal `json:"cost"`
	MaxSeats   *int            `json:"max_seats,omitempty"`
}

func (r *CreatePlanRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Cost.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("cost must be greater than zero").
			WithHint("Please provide a positive plan cost").
			WithReportableDetails(map[string]any{
				"cost": r.Cost,
			}).
			Mark(ierr.ErrValidation)
	}

	if r.MaxSeats != nil && *r.MaxSeats <= 0 {
		return ierr.NewError("max_seats must be greater than zero").
			WithHint("Omit max_seats for an unlimited plan").
			WithReportableDetails(map[string]any{
				"max_seats": *r.MaxSeats,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

func (r *CreatePlanRequest) ToPlan(ctx context.Context) *plan.Plan {
	return &plan.Plan{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		PlatformID: r.PlatformID,
		Name:       r.Name,
		Cost:       r.Cost,
		MaxSeats:   r.MaxSeats,
		IsActive:   true,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

type PlanResponse struct {
	*plan.Plan
}
