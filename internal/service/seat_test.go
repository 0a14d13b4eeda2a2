package service

import (
	"testing"
	"time"

	"github.com/resello/resello/internal/api/dto"
	"github.com/resello/resello/internal/domain/plan"
	"github.com/resello/resello/internal/domain/platform"
	"github.com/resello/resello/internal/domain/seat"
	"github.com/resello/resello/internal/domain/subscription"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/testutil"
	"github.com/resello/resello/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SeatServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  SeatService
	testData struct {
		platform *platform.Platform
		plan     *plan.Plan
		sub      *subscription.Subscription
		seat     *seat.Seat
	}
}

func TestSeatService(t *testing.T) {
	suite.Run(t, new(SeatServiceSuite))
}

func (s *SeatServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.GetClock().SetNow(time.Date(2024, time.January, 5, 10, 30, 0, 0, time.UTC))
	s.service = NewSeatService(s.params())
	s.setupTestData()
}

func (s *SeatServiceSuite) params() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:              s.GetLogger(),
		Config:              s.GetConfig(),
		DB:                  s.GetDB(),
		Clock:               s.GetClock(),
		PlatformRepo:        stores.PlatformRepo,
		PlanRepo:            stores.PlanRepo,
		SubRepo:             stores.SubscriptionRepo,
		SeatRepo:            stores.SeatRepo,
		RenewalRepo:         stores.RenewalRepo,
		PlatformRenewalRepo: stores.PlatformRenewalRepo,
	}
}

func (s *SeatServiceSuite) setupTestData() {
	ctx := s.GetContext()
	stores := s.GetStores()

	s.testData.platform = &platform.Platform{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLATFORM),
		Name:      "StreamFlix",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.PlatformRepo.Create(ctx, s.testData.platform))

	s.testData.plan = &plan.Plan{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		PlatformID: s.testData.platform.ID,
		Name:       "Family",
		Cost:       decimal.NewFromInt(20),
		MaxSeats:   lo.ToPtr(3),
		IsActive:   true,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.PlanRepo.Create(ctx, s.testData.plan))

	s.testData.sub = &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		PlanID:             s.testData.plan.ID,
		PlatformID:         s.testData.platform.ID,
		Label:              "Main account",
		StartDate:          time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
		ActiveUntil:        time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
		SubscriptionStatus: types.SubscriptionStatusActive,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.SubscriptionRepo.Create(ctx, s.testData.sub))

	s.testData.seat = &seat.Seat{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SEAT),
		SubscriptionID: s.testData.sub.ID,
		ClientID:       "client-1",
		ClientName:     "First Client",
		CustomPrice:    decimal.NewFromInt(5),
		ActiveUntil:    time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		SeatStatus:     types.SeatStatusActive,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.SeatRepo.Create(ctx, s.testData.seat))
}

func (s *SeatServiceSuite) reloadSeat(id string) *seat.Seat {
	st, err := s.GetStores().SeatRepo.Get(s.GetContext(), id)
	s.NoError(err)
	return st
}

func (s *SeatServiceSuite) TestCreateSeat() {
	resp, err := s.service.CreateSeat(s.GetContext(), dto.CreateSeatRequest{
		SubscriptionID: s.testData.sub.ID,
		ClientID:       "client-2",
		ClientName:     "Second Client",
		CustomPrice:    decimal.NewFromInt(6),
	})
	s.NoError(err)
	s.Equal(types.SeatStatusActive, resp.Seat.SeatStatus)
	// Default duration is one month from today.
	s.True(resp.Seat.ActiveUntil.Equal(time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)))
	s.Nil(resp.Seat.LeftAt)
	s.Nil(resp.Seat.RemainingDays)
}

func (s *SeatServiceSuite) TestCreateSeatWithExplicitStart() {
	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	resp, err := s.service.CreateSeat(s.GetContext(), dto.CreateSeatRequest{
		SubscriptionID: s.testData.sub.ID,
		ClientID:       "client-2",
		CustomPrice:    decimal.NewFromInt(6),
		StartDate:      &start,
		DurationMonths: 1,
	})
	s.NoError(err)
	// Jan 31 + 1 month clamps to the end of February.
	s.True(resp.Seat.ActiveUntil.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)))
}

func (s *SeatServiceSuite) TestCreateSeatRejectsNonPositivePrice() {
	_, err := s.service.CreateSeat(s.GetContext(), dto.CreateSeatRequest{
		SubscriptionID: s.testData.sub.ID,
		ClientID:       "client-2",
		CustomPrice:    decimal.Zero,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SeatServiceSuite) TestCreateSeatCapacityCeiling() {
	ctx := s.GetContext()

	// The fixture seat occupies one of three slots; fill the other two.
	for _, clientID := range []string{"client-2", "client-3"} {
		_, err := s.service.CreateSeat(ctx, dto.CreateSeatRequest{
			SubscriptionID: s.testData.sub.ID,
			ClientID:       clientID,
			CustomPrice:    decimal.NewFromInt(6),
		})
		s.NoError(err)
	}

	_, err := s.service.CreateSeat(ctx, dto.CreateSeatRequest{
		SubscriptionID: s.testData.sub.ID,
		ClientID:       "client-4",
		CustomPrice:    decimal.NewFromInt(6),
	})
	s.Error(err)
	s.True(ierr.IsCapacityExceeded(err))

	// Cancelling a seat frees its slot.
	_, err = s.service.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionCancel,
	})
	s.NoError(err)

	_, err = s.service.CreateSeat(ctx, dto.CreateSeatRequest{
		SubscriptionID: s.testData.sub.ID,
		ClientID:       "client-4",
		CustomPrice:    decimal.NewFromInt(6),
	})
	s.NoError(err)
}

func (s *SeatServiceSuite) TestPausedSeatStillOccupiesCapacity() {
	ctx := s.GetContext()

	_, err := s.service.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionPause,
	})
	s.NoError(err)

	occupied, err := s.GetStores().SeatRepo.CountOccupied(ctx, s.testData.sub.ID)
	s.NoError(err)
	s.Equal(1, occupied)
}

func (s *SeatServiceSuite) TestPauseFreezesRemainingDays() {
	resp, err := s.service.UpdateSeatStatus(s.GetContext(), s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionPause,
	})
	s.NoError(err)

	s.Equal(types.SeatStatusPaused, resp.Seat.SeatStatus)
	s.Equal(5, lo.FromPtr(resp.Seat.RemainingDays))
	s.NotNil(resp.Seat.LeftAt)
	s.True(resp.Seat.LeftAt.Equal(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)))
	// The expiry date is left stale while paused; the frozen day count is
	// what matters.
	s.True(resp.Seat.ActiveUntil.Equal(s.testData.seat.ActiveUntil))
}

func (s *SeatServiceSuite) TestResumeRestoresFrozenDays() {
	ctx := s.GetContext()

	_, err := s.service.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionPause,
	})
	s.NoError(err)

	// Three days pass while paused; none of them consume paid service.
	s.GetClock().SetNow(time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC))

	resp, err := s.service.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionResume,
	})
	s.NoError(err)

	s.Equal(types.SeatStatusActive, resp.Seat.SeatStatus)
	s.True(resp.Seat.ActiveUntil.Equal(time.Date(2024, time.January, 13, 0, 0, 0, 0, time.UTC)))
	s.Nil(resp.Seat.LeftAt)
	s.Nil(resp.Seat.RemainingDays)
}

func (s *SeatServiceSuite) TestPauseExpiredSeatFreezesZero() {
	ctx := s.GetContext()
	s.GetClock().SetNow(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

	resp, err := s.service.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionPause,
	})
	s.NoError(err)
	s.Equal(0, lo.FromPtr(resp.Seat.RemainingDays))

	// Resuming a fully consumed pause lands on today, already expired,
	// granting no extra days.
	s.GetClock().SetNow(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))
	resp, err = s.service.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionResume,
	})
	s.NoError(err)
	s.True(resp.Seat.ActiveUntil.Equal(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)))
	s.True(resp.Seat.IsLapsed(s.GetClock().Now().Add(24 * time.Hour)))
}

func (s *SeatServiceSuite) TestPauseWhenPausedIsNoop() {
	ctx := s.GetContext()

	_, err := s.service.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionPause,
	})
	s.NoError(err)
	first := s.reloadSeat(s.testData.seat.ID)

	// Days later, a second pause must not refreeze from the stale expiry.
	s.GetClock().SetNow(time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC))
	resp, err := s.service.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionPause,
	})
	s.NoError(err)
	s.Equal(lo.FromPtr(first.RemainingDays), lo.FromPtr(resp.Seat.RemainingDays))
	s.True(first.LeftAt.Equal(lo.FromPtr(resp.Seat.LeftAt)))
}

func (s *SeatServiceSuite) TestResumeWhenActiveIsNoop() {
	resp, err := s.service.UpdateSeatStatus(s.GetContext(), s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionResume,
	})
	s.NoError(err)
	s.Equal(types.SeatStatusActive, resp.Seat.SeatStatus)
	s.True(resp.Seat.ActiveUntil.Equal(s.testData.seat.ActiveUntil))
}

func (s *SeatServiceSuite) TestCancelIsTerminal() {
	ctx := s.GetContext()

	resp, err := s.service.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionCancel,
	})
	s.NoError(err)
	s.Equal(types.SeatStatusCancelled, resp.Seat.SeatStatus)
	s.NotNil(resp.Seat.LeftAt)
	s.Nil(resp.Seat.RemainingDays)
	// The historical expiry is retained on the cancelled seat.
	s.True(resp.Seat.ActiveUntil.Equal(s.testData.seat.ActiveUntil))

	for _, action := range []types.SeatAction{
		types.SeatActionPause,
		types.SeatActionResume,
		types.SeatActionCancel,
	} {
		_, err = s.service.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
			Action: action,
		})
		s.Error(err)
		s.True(ierr.IsInvalidOperation(err))
	}
}

func (s *SeatServiceSuite) TestUpdatePrice() {
	newPrice := decimal.NewFromFloat(7.50)
	resp, err := s.service.UpdateSeatStatus(s.GetContext(), s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action:      types.SeatActionUpdatePrice,
		CustomPrice: &newPrice,
	})
	s.NoError(err)
	s.True(resp.Seat.CustomPrice.Equal(newPrice))
	s.Equal(types.SeatStatusActive, resp.Seat.SeatStatus)
}

func (s *SeatServiceSuite) TestStatusChangeValidation() {
	price := decimal.NewFromInt(9)
	tests := []struct {
		name string
		req  dto.SeatStatusChangeRequest
	}{
		{
			name: "update_price without a price",
			req:  dto.SeatStatusChangeRequest{Action: types.SeatActionUpdatePrice},
		},
		{
			name: "pause with a price",
			req:  dto.SeatStatusChangeRequest{Action: types.SeatActionPause, CustomPrice: &price},
		},
		{
			name: "unknown action",
			req:  dto.SeatStatusChangeRequest{Action: types.SeatAction("reap")},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.UpdateSeatStatus(s.GetContext(), s.testData.seat.ID, tt.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *SeatServiceSuite) TestUpdateSeatStatusNotFound() {
	_, err := s.service.UpdateSeatStatus(s.GetContext(), "seat_missing", dto.SeatStatusChangeRequest{
		Action: types.SeatActionPause,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
