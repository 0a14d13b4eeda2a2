package repository

import (
	"github.com/resello/resello/internal/domain/plan"
	"github.com/resello/resello/internal/domain/platform"
	"github.com/resello/resello/internal/domain/renewal"
	"github.com/resello/resello/internal/domain/seat"
	"github.com/resello/resello/internal/domain/subscription"
	"github.com/resello/resello/internal/logger"
	"github.com/resello/resello/internal/postgres"
	pgRepo "github.com/resello/resello/internal/repository/postgres"
)

func NewPlatformRepository(db *postgres.DB, logger *logger.Logger) platform.Repository {
	return pgRepo.NewPlatformRepository(db, logger)
}

func NewPlanRepository(db *postgres.DB, logger *logger.Logger) plan.Repository {
	return pgRepo.NewPlanRepository(db, logger)
}

func NewSubscriptionRepository(db *postgres.DB, logger *logger.Logger) subscription.Repository {
	return pgRepo.NewSubscriptionRepository(db, logger)
}

func NewSeatRepository(db *postgres.DB, logger *logger.Logger) seat.Repository {
	return pgRepo.NewSeatRepository(db, logger)
}

func NewRenewalRepository(db *postgres.DB, logger *logger.Logger) renewal.Repository {
	return pgRepo.NewRenewalRepository(db, logger)
}

func NewPlatformRenewalRepository(db *postgres.DB, logger *logger.Logger) renewal.PlatformRenewalRepository {
	return pgRepo.NewPlatformRenewalRepository(db, logger)
}
