package testutil

import (
	"context"
	"time"

	"github.com/resello/resello/internal/config"
	"github.com/resello/resello/internal/domain/plan"
	"github.com/resello/resello/internal/domain/platform"
	"github.com/resello/resello/internal/domain/renewal"
	"github.com/resello/resello/internal/domain/seat"
	"github.com/resello/resello/internal/domain/subscription"
	"github.com/resello/resello/internal/logger"
	"github.com/resello/resello/internal/postgres"
	"github.com/resello/resello/internal/types"
	"github.com/resello/resello/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	PlatformRepo        platform.Repository
	PlanRepo            plan.Repository
	SubscriptionRepo    subscription.Repository
	SeatRepo            seat.Repository
	RenewalRepo         renewal.Repository
	PlatformRenewalRepo renewal.PlatformRenewalRepository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     *MockPostgresClient
	logger *logger.Logger
	config *config.Configuration
	clock  *TestClock
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.clock = NewTestClock(time.Now().UTC())
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxTenantID, types.DefaultTenantID)
	s.ctx = context.WithValue(s.ctx, types.CtxUserID, types.DefaultUserID)
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	platformStore := NewInMemoryPlatformStore()
	planStore := NewInMemoryPlanStore()
	subscriptionStore := NewInMemorySubscriptionStore()
	seatStore := NewInMemorySeatStore()
	renewalStore := NewInMemoryRenewalStore()
	platformRenewalStore := NewInMemoryPlatformRenewalStore()

	s.stores = Stores{
		PlatformRepo:        platformStore,
		PlanRepo:            planStore,
		SubscriptionRepo:    subscriptionStore,
		SeatRepo:            seatStore,
		RenewalRepo:         renewalStore,
		PlatformRenewalRepo: platformRenewalStore,
	}

	s.db = NewMockPostgresClient(
		platformStore,
		planStore,
		subscriptionStore,
		seatStore,
		renewalStore,
		platformRenewalStore,
	)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.PlatformRepo.(*InMemoryPlatformStore).Clear()
	s.stores.PlanRepo.(*InMemoryPlanStore).Clear()
	s.stores.SubscriptionRepo.(*InMemorySubscriptionStore).Clear()
	s.stores.SeatRepo.(*InMemorySeatStore).Clear()
	s.stores.RenewalRepo.(*InMemoryRenewalStore).Clear()
	s.stores.PlatformRenewalRepo.(*InMemoryPlatformRenewalStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the mock postgres client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetMockDB returns the mock postgres client with its concrete type so
// tests can register extra stores.
func (s *BaseServiceTestSuite) GetMockDB() *MockPostgresClient {
	return s.db
}

// GetClock returns the controllable test clock
func (s *BaseServiceTestSuite) GetClock() *TestClock {
	return s.clock
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.clock.Now()
}
