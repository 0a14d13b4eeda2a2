package main

import (
	"context"
	"time"

	"github.com/resello/resello/internal/clock"
	"github.com/resello/resello/internal/config"
	"github.com/resello/resello/internal/logger"
	"github.com/resello/resello/internal/postgres"
	"github.com/resello/resello/internal/repository"
	"github.com/resello/resello/internal/service"
	"github.com/resello/resello/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,
			func(db *postgres.DB) postgres.IClient { return db },

			// Clock
			clock.New,

			// Repositories
			repository.NewPlatformRepository,
			repository.NewPlanRepository,
			repository.NewSubscriptionRepository,
			repository.NewSeatRepository,
			repository.NewRenewalRepository,
			repository.NewPlatformRenewalRepository,

			// Services
			service.NewServiceParams,
			service.NewPlatformService,
			service.NewPlanService,
			service.NewSubscriptionService,
			service.NewSeatService,
			service.NewRenewalService,
		),
		fx.Invoke(run),
	)

	app.Run()
}

func run(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	log *logger.Logger,
	db *postgres.DB,
	_ service.RenewalService,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting renewal engine",
				"mode", cfg.Deployment.Mode,
				"postgres_host", cfg.Postgres.Host,
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down")
			db.Close()
			return nil
		},
	})
}
