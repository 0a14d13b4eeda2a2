package service

import (
	"github.com/resello/resello/internal/clock"
	"github.com/resello/resello/internal/config"
	"github.com/resello/resello/internal/domain/plan"
	"github.com/resello/resello/internal/domain/platform"
	"github.com/resello/resello/internal/domain/renewal"
	"github.com/resello/resello/internal/domain/seat"
	"github.com/resello/resello/internal/domain/subscription"
	"github.com/resello/resello/internal/logger"
	"github.com/resello/resello/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Clock  clock.Clock

	// Repositories
	PlatformRepo        platform.Repository
	PlanRepo            plan.Repository
	SubRepo             subscription.Repository
	SeatRepo            seat.Repository
	RenewalRepo         renewal.Repository
	PlatformRenewalRepo renewal.PlatformRenewalRepository
}

// NewServiceParams assembles the common dependency set handed to every
// service constructor.
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	clk clock.Clock,
	platformRepo platform.Repository,
	planRepo plan.Repository,
	subRepo subscription.Repository,
	seatRepo seat.Repository,
	renewalRepo renewal.Repository,
	platformRenewalRepo renewal.PlatformRenewalRepository,
) ServiceParams {
	return ServiceParams{
		Logger:              logger,
		Config:              config,
		DB:                  db,
		Clock:               clk,
		PlatformRepo:        platformRepo,
		PlanRepo:            planRepo,
		SubRepo:             subRepo,
		SeatRepo:            seatRepo,
		RenewalRepo:         renewalRepo,
		PlatformRenewalRepo: platformRenewalRepo,
	}
}
