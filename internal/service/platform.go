package service

import (
	"context"

	"github.com/resello/resello/internal/api/dto"
)

type PlatformService interface {
	CreatePlatform(ctx context.Context, req dto.CreatePlatformRequest) (*dto.PlatformResponse, error)
	GetPlatform(ctx context.Context, id string) (*dto.PlatformResponse, error)
}

type platformService struct {
	ServiceParams
}

func NewPlatformService(params ServiceParams) PlatformService {
	return &platformService{ServiceParams: params}
}

func (s *platformService) CreatePlatform(ctx context.Context, req dto.CreatePlatformRequest) (*dto.PlatformResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToPlatform(ctx)
	if err := s.PlatformRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created platform", "platform_id", p.ID, "name", p.Name)
	return &dto.PlatformResponse{Platform: p}, nil
}

func (s *platformService) GetPlatform(ctx context.Context, id string) (*dto.PlatformResponse, error) {
	p, err := s.PlatformRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PlatformResponse{Platform: p}, nil
}
