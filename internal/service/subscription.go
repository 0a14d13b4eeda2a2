package service

import (
	"context"

	"github.com/resello/resello/internal/api/dto"
	"github.com/resello/resello/internal/domain/seat"
	ierr "github.com/resello/resello/internal/errors"
)

type SubscriptionService interface {
	CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	// ChangePlan reassigns the subscription onto another plan. The target
	// plan's seat ceiling is re-checked against the seats currently
	// occupying capacity before anything moves.
	ChangePlan(ctx context.Context, id string, req dto.ChangePlanRequest) (*dto.SubscriptionResponse, error)
}

type subscriptionService struct {
	ServiceParams
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{ServiceParams: params}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PlanRepo.Get(ctx, req.PlanID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Plan not found").
			WithReportableDetails(map[string]any{
				"plan_id": req.PlanID,
			}).
			Mark(ierr.ErrNotFound)
	}

	if !p.IsActive {
		return nil, ierr.NewError("plan is not active").
			WithHint("Cannot subscribe to an inactive plan").
			WithReportableDetails(map[string]any{
				"plan_id": p.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	sub := req.ToSubscription(ctx, p.PlatformID, s.Clock.Now())
	if err := s.SubRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("created subscription",
		"subscription_id", sub.ID,
		"plan_id", sub.PlanID,
		"active_until", sub.ActiveUntil,
	)
	return &dto.SubscriptionResponse{Subscription: sub}, nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SubscriptionResponse{Subscription: sub}, nil
}

func (s *subscriptionService) ChangePlan(ctx context.Context, id string, req dto.ChangePlanRequest) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	target, err := s.PlanRepo.Get(ctx, req.PlanID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Target plan not found").
			WithReportableDetails(map[string]any{
				"plan_id": req.PlanID,
			}).
			Mark(ierr.ErrNotFound)
	}

	occupied, err := s.SeatRepo.CountOccupied(ctx, sub.ID)
	if err != nil {
		return nil, err
	}

	// Moving onto the target plan must not violate its ceiling with the
	// seats the subscription already holds.
	if err := seat.CheckCapacity(target.MaxSeats, occupied, 0); err != nil {
		return nil, err
	}

	sub.PlanID = target.ID
	sub.PlatformID = target.PlatformID
	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("reassigned subscription plan",
		"subscription_id", sub.ID,
		"plan_id", target.ID,
		"occupied_seats", occupied,
	)
	return &dto.SubscriptionResponse{Subscription: sub}, nil
}
