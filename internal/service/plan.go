package service

import (
	"context"

	"github.com/resello/resello/internal/api/dto"
	ierr "github.com/resello/resello/internal/errors"
)

type PlanService interface {
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error)
}

type planService struct {
	ServiceParams
}

func NewPlanService(params ServiceParams) PlanService {
	return &planService{ServiceParams: params}
}

func (s *planService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.PlatformRepo.Get(ctx, req.PlatformID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Platform not found").
			WithReportableDetails(map[string]any{
				"platform_id": req.PlatformID,
			}).
			Mark(ierr.ErrNotFound)
	}

	p := req.ToPlan(ctx)
	if err := s.PlanRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created plan",
		"plan_id", p.ID,
		"platform_id", p.PlatformID,
		"cost", p.Cost,
	)
	return &dto.PlanResponse{Plan: p}, nil
}

func (s *planService) GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error) {
	p, err := s.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PlanResponse{Plan: p}, nil
}
