package service

import (
	"context"
	"strings"
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

type RenewalServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     RenewalService
	seatService SeatService
	testData    struct {
		platform *platform.Platform
		plan     *plan.Plan
		sub      *subscription.Subscription
		seat     *seat.Seat
	}
}

func TestRenewalService(t *testing.T) {
	suite.Run(t, new(RenewalServiceSuite))
}

func (s *RenewalServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.GetClock().SetNow(time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC))
	params := s.params()
	s.service = NewRenewalService(params)
	s.seatService = NewSeatService(params)
	s.setupTestData()
}

func (s *RenewalServiceSuite) params() ServiceParams {
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

func (s *RenewalServiceSuite) setupTestData() {
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
		MaxSeats:   lo.ToPtr(5),
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
		ActiveUntil:        time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		SubscriptionStatus: types.SubscriptionStatusActive,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	s.NoError(stores.SubscriptionRepo.Create(ctx, s.testData.sub))

	s.testData.seat = s.createSeat("client-1", decimal.NewFromInt(5),
		time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))
}

func (s *RenewalServiceSuite) createSeat(clientID string, price decimal.Decimal, activeUntil time.Time) *seat.Seat {
	st := &seat.Seat{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SEAT),
		SubscriptionID: s.testData.sub.ID,
		ClientID:       clientID,
		CustomPrice:    price,
		ActiveUntil:    activeUntil,
		SeatStatus:     types.SeatStatusActive,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().SeatRepo.Create(s.GetContext(), st))
	return st
}

func (s *RenewalServiceSuite) TestRenewSeatOnTime() {
	// Seat expires 2024-03-10, paid on 2024-02-20, well before the due date.
	resp, err := s.service.RenewSeat(s.GetContext(), s.testData.seat.ID, dto.RenewSeatRequest{})
	s.NoError(err)

	s.True(resp.Seat.ActiveUntil.Equal(time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)))
	s.False(resp.Lapsed)
	s.False(resp.ExpiredAfter)

	log := resp.Log
	s.Equal(1, log.MonthsRenewed)
	s.True(log.AmountPaid.Equal(decimal.NewFromInt(5)))
	s.True(log.ExpectedAmount.Equal(decimal.NewFromInt(5)))
	s.True(log.PaidOn.Equal(time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)))
	s.True(log.DueOn.Equal(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)))
	s.True(log.PeriodStart.Equal(time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)))
	s.True(log.PeriodEnd.Equal(time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)))
	s.False(log.IsLate())
	s.Equal(0, log.DaysLate())
	s.True(strings.HasPrefix(log.Reference, "RN-"))
}

func (s *RenewalServiceSuite) TestRenewSeatLateAnchorsToToday() {
	// Expiry already behind today: the extension runs from today, so the
	// client does not receive back-dated coverage, and the row records how
	// late the payment was.
	st := s.createSeat("client-late", decimal.NewFromInt(5),
		time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))
	s.GetClock().SetNow(time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC))

	resp, err := s.service.RenewSeat(s.GetContext(), st.ID, dto.RenewSeatRequest{})
	s.NoError(err)

	s.True(resp.Lapsed)
	s.True(resp.Seat.ActiveUntil.Equal(time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC)))
	s.True(resp.Log.DueOn.Equal(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)))
	s.True(resp.Log.IsLate())
	s.Equal(34, resp.Log.DaysLate())
	// Coverage still starts the day after the old expiry; the gap is
	// visible in the ledger rather than papered over.
	s.True(resp.Log.PeriodStart.Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)))
}

func (s *RenewalServiceSuite) TestRenewSeatMultipleMonths() {
	resp, err := s.service.RenewSeat(s.GetContext(), s.testData.seat.ID, dto.RenewSeatRequest{
		Months:     lo.ToPtr(3),
		AmountPaid: lo.ToPtr(decimal.NewFromInt(14)),
	})
	s.NoError(err)
	s.True(resp.Seat.ActiveUntil.Equal(time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)))
	// Explicit amount wins; the single-seat path never multiplies price.
	s.True(resp.Log.AmountPaid.Equal(decimal.NewFromInt(14)))
	s.True(resp.Log.ExpectedAmount.Equal(decimal.NewFromInt(5)))
}

func (s *RenewalServiceSuite) TestRenewSeatClampsMonthEnd() {
	st := s.createSeat("client-eom", decimal.NewFromInt(5),
		time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))
	s.GetClock().SetNow(time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC))

	resp, err := s.service.RenewSeat(s.GetContext(), st.ID, dto.RenewSeatRequest{})
	s.NoError(err)
	s.True(resp.Seat.ActiveUntil.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)))
}

func (s *RenewalServiceSuite) TestCorrectionWalksBackFromExpiry() {
	ctx := s.GetContext()

	// Extend by two months, then take one back.
	_, err := s.service.RenewSeat(ctx, s.testData.seat.ID, dto.RenewSeatRequest{
		Months: lo.ToPtr(2),
	})
	s.NoError(err)

	resp, err := s.service.RenewSeat(ctx, s.testData.seat.ID, dto.RenewSeatRequest{
		Months:     lo.ToPtr(-1),
		AmountPaid: lo.ToPtr(decimal.Zero),
	})
	s.NoError(err)

	s.True(resp.Seat.ActiveUntil.Equal(time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)))
	s.False(resp.ExpiredAfter)
	s.Equal(-1, resp.Log.MonthsRenewed)
	s.True(resp.Log.IsCorrection())
	// Corrections are auto-tagged and get a default note when none given.
	s.Contains(resp.Log.Notes, types.RenewalNoteTagCorrection)
	s.Contains(resp.Log.Notes, "Adjusted expiry by -1 month(s)")
	// DueOn is the expiry observed before this correction mutated it.
	s.True(resp.Log.DueOn.Equal(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)))
	s.True(resp.Log.PeriodStart.Equal(time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)))
	s.True(resp.Log.PeriodEnd.Equal(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)))
}

func (s *RenewalServiceSuite) TestCorrectionKeepsCallerNotes() {
	resp, err := s.service.RenewSeat(s.GetContext(), s.testData.seat.ID, dto.RenewSeatRequest{
		Months: lo.ToPtr(-1),
		Notes:  "operator fat-fingered a renewal",
	})
	s.NoError(err)
	s.Equal("[CORRECTION] operator fat-fingered a renewal", resp.Log.Notes)
}

func (s *RenewalServiceSuite) TestCorrectionCanExpireSeat() {
	// Expiry only a few days out: walking back a whole month lands in the
	// past. That is a legitimate outcome, flagged rather than rejected.
	st := s.createSeat("client-thin", decimal.NewFromInt(5),
		time.Date(2024, time.February, 25, 0, 0, 0, 0, time.UTC))

	resp, err := s.service.RenewSeat(s.GetContext(), st.ID, dto.RenewSeatRequest{
		Months: lo.ToPtr(-1),
	})
	s.NoError(err)
	s.True(resp.ExpiredAfter)
	s.True(resp.Seat.ActiveUntil.Equal(time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC)))
	s.True(resp.Seat.IsLapsed(s.GetClock().Now()))
}

func (s *RenewalServiceSuite) TestCorrectionIgnoresLapse() {
	// Unlike an extension, a correction never re-anchors to today even when
	// the expiry is already behind it.
	st := s.createSeat("client-old", decimal.NewFromInt(5),
		time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))

	resp, err := s.service.RenewSeat(s.GetContext(), st.ID, dto.RenewSeatRequest{
		Months: lo.ToPtr(-1),
	})
	s.NoError(err)
	s.True(resp.Seat.ActiveUntil.Equal(time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC)))
	s.False(resp.Lapsed)
	s.True(resp.ExpiredAfter)
}

func (s *RenewalServiceSuite) TestRenewSeatDoesNotTouchStatus() {
	ctx := s.GetContext()

	_, err := s.seatService.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionPause,
	})
	s.NoError(err)

	resp, err := s.service.RenewSeat(ctx, s.testData.seat.ID, dto.RenewSeatRequest{})
	s.NoError(err)
	// A single-seat renewal records money; it is not a resume.
	s.Equal(types.SeatStatusPaused, resp.Seat.SeatStatus)
	s.NotNil(resp.Seat.RemainingDays)
}

func (s *RenewalServiceSuite) TestRenewSeatValidation() {
	tests := []struct {
		name string
		req  dto.RenewSeatRequest
	}{
		{name: "zero months", req: dto.RenewSeatRequest{Months: lo.ToPtr(0)}},
		{name: "months beyond cap", req: dto.RenewSeatRequest{Months: lo.ToPtr(types.MaxRenewalMonths + 1)}},
		{name: "negative amount", req: dto.RenewSeatRequest{AmountPaid: lo.ToPtr(decimal.NewFromInt(-3))}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.RenewSeat(s.GetContext(), s.testData.seat.ID, tt.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *RenewalServiceSuite) TestRenewSeatNotFound() {
	_, err := s.service.RenewSeat(s.GetContext(), "seat_missing", dto.RenewSeatRequest{})
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	resp, err := s.service.ListSeatLedger(s.GetContext(), s.testData.seat.ID)
	s.NoError(err)
	s.Equal(0, resp.Total)
}

func (s *RenewalServiceSuite) TestCancelledSeatLedgerSurvives() {
	ctx := s.GetContext()

	_, err := s.service.RenewSeat(ctx, s.testData.seat.ID, dto.RenewSeatRequest{})
	s.NoError(err)

	_, err = s.seatService.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionCancel,
	})
	s.NoError(err)

	resp, err := s.service.ListSeatLedger(ctx, s.testData.seat.ID)
	s.NoError(err)
	s.Equal(1, resp.Total)
}

func (s *RenewalServiceSuite) TestBulkRenewSeats() {
	ctx := s.GetContext()
	other := s.createSeat("client-2", decimal.NewFromInt(8),
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

	resp, err := s.service.BulkRenewSeats(ctx, dto.BulkRenewRequest{
		Months: 2,
		Items: []dto.BulkRenewItem{
			{SeatID: s.testData.seat.ID},
			{SeatID: other.ID, AmountPaid: lo.ToPtr(decimal.NewFromInt(10))},
		},
		Notes: "march batch",
	})
	s.NoError(err)
	s.Equal(2, resp.RenewedCount)

	// Each seat anchors independently: the first stacks on its future
	// expiry, the second is lapsed and anchors to today.
	first, second := resp.Items[0], resp.Items[1]
	s.True(first.Seat.ActiveUntil.Equal(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)))
	s.False(first.Lapsed)
	s.True(second.Seat.ActiveUntil.Equal(time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC)))
	s.True(second.Lapsed)

	// Bulk defaults to price times months; an explicit amount wins.
	s.True(first.Log.AmountPaid.Equal(decimal.NewFromInt(10)))
	s.True(second.Log.AmountPaid.Equal(decimal.NewFromInt(10)))
	s.Equal("[BULK] march batch", first.Log.Notes)
	s.Equal(2, first.Log.MonthsRenewed)
}

func (s *RenewalServiceSuite) TestBulkRenewReactivatesPausedSeat() {
	ctx := s.GetContext()

	_, err := s.seatService.UpdateSeatStatus(ctx, s.testData.seat.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionPause,
	})
	s.NoError(err)

	resp, err := s.service.BulkRenewSeats(ctx, dto.BulkRenewRequest{
		Months: 1,
		Items:  []dto.BulkRenewItem{{SeatID: s.testData.seat.ID}},
	})
	s.NoError(err)

	st := resp.Items[0].Seat
	s.Equal(types.SeatStatusActive, st.SeatStatus)
	s.Nil(st.LeftAt)
	s.Nil(st.RemainingDays)
}

func (s *RenewalServiceSuite) TestBulkRenewAbortsOnUnknownSeat() {
	ctx := s.GetContext()
	before := s.testData.seat.ActiveUntil

	_, err := s.service.BulkRenewSeats(ctx, dto.BulkRenewRequest{
		Months: 1,
		Items: []dto.BulkRenewItem{
			{SeatID: s.testData.seat.ID},
			{SeatID: "seat_missing"},
		},
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	// The first seat's renewal must have been rolled back with the batch.
	st, err := s.GetStores().SeatRepo.Get(ctx, s.testData.seat.ID)
	s.NoError(err)
	s.True(st.ActiveUntil.Equal(before))

	ledger, err := s.service.ListSeatLedger(ctx, s.testData.seat.ID)
	s.NoError(err)
	s.Equal(0, ledger.Total)
}

func (s *RenewalServiceSuite) TestBulkRenewAbortsOnCancelledSeat() {
	ctx := s.GetContext()
	cancelled := s.createSeat("client-gone", decimal.NewFromInt(5),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	_, err := s.seatService.UpdateSeatStatus(ctx, cancelled.ID, dto.SeatStatusChangeRequest{
		Action: types.SeatActionCancel,
	})
	s.NoError(err)

	_, err = s.service.BulkRenewSeats(ctx, dto.BulkRenewRequest{
		Months: 1,
		Items: []dto.BulkRenewItem{
			{SeatID: s.testData.seat.ID},
			{SeatID: cancelled.ID},
		},
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	ledger, err := s.service.ListSeatLedger(ctx, s.testData.seat.ID)
	s.NoError(err)
	s.Equal(0, ledger.Total)
}

// failingSeatRepo delegates everything but fails Update, which in RenewSeat
// fires after the ledger row has already been inserted.
type failingSeatRepo struct {
	seat.Repository
}

func (r *failingSeatRepo) Update(ctx context.Context, st *seat.Seat) error {
	return ierr.NewError("connection reset").
		WithHint("Failed to update seat").
		Mark(ierr.ErrDatabase)
}

func (s *RenewalServiceSuite) TestRenewSeatRollsBackLedgerOnSeatUpdateFailure() {
	ctx := s.GetContext()
	params := s.params()
	params.SeatRepo = &failingSeatRepo{Repository: params.SeatRepo}
	broken := NewRenewalService(params)

	_, err := broken.RenewSeat(ctx, s.testData.seat.ID, dto.RenewSeatRequest{})
	s.Error(err)
	s.True(ierr.IsDatabase(err))

	// Neither half of the operation may survive: the ledger row written
	// before the failing seat update must be rolled back with it.
	ledger, err := s.service.ListSeatLedger(ctx, s.testData.seat.ID)
	s.NoError(err)
	s.Equal(0, ledger.Total)

	st, err := s.GetStores().SeatRepo.Get(ctx, s.testData.seat.ID)
	s.NoError(err)
	s.True(st.ActiveUntil.Equal(s.testData.seat.ActiveUntil))
}

func (s *RenewalServiceSuite) TestBulkRenewRejectsNegativeMonths() {
	_, err := s.service.BulkRenewSeats(s.GetContext(), dto.BulkRenewRequest{
		Months: -1,
		Items:  []dto.BulkRenewItem{{SeatID: s.testData.seat.ID}},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *RenewalServiceSuite) TestRenewPlatform() {
	resp, err := s.service.RenewPlatform(s.GetContext(), s.testData.sub.ID, dto.RenewPlatformRequest{})
	s.NoError(err)

	s.True(resp.Subscription.ActiveUntil.Equal(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	// Amount defaults to the plan's cost.
	s.True(resp.Renewal.AmountPaid.Equal(decimal.NewFromInt(20)))
	s.True(resp.Renewal.PaidOn.Equal(time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)))
	s.True(resp.Renewal.PeriodStart.Equal(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)))
	s.True(resp.Renewal.PeriodEnd.Equal(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	s.True(strings.HasPrefix(resp.Renewal.Reference, "PR-"))
}

func (s *RenewalServiceSuite) TestRenewPlatformAlwaysExtendsFromExpiry() {
	// Even when the subscription has lapsed, platform billing extends from
	// the recorded expiry, never re-anchoring to today.
	s.GetClock().SetNow(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	resp, err := s.service.RenewPlatform(s.GetContext(), s.testData.sub.ID, dto.RenewPlatformRequest{})
	s.NoError(err)
	s.True(resp.Subscription.ActiveUntil.Equal(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
}

func (s *RenewalServiceSuite) TestPlatformLedger() {
	ctx := s.GetContext()

	for i := 0; i < 3; i++ {
		_, err := s.service.RenewPlatform(ctx, s.testData.sub.ID, dto.RenewPlatformRequest{})
		s.NoError(err)
	}

	resp, err := s.service.ListPlatformLedger(ctx, s.testData.sub.ID)
	s.NoError(err)
	s.Equal(3, resp.Total)
}

func (s *RenewalServiceSuite) TestPreviewMatchesCommit() {
	ctx := s.GetContext()

	preview, err := s.service.PreviewRenewal(ctx, s.testData.seat.ID, 2)
	s.NoError(err)
	s.True(preview.SuggestedAmount.Equal(decimal.NewFromInt(10)))

	// Preview writes nothing.
	ledger, err := s.service.ListSeatLedger(ctx, s.testData.seat.ID)
	s.NoError(err)
	s.Equal(0, ledger.Total)
	st, err := s.GetStores().SeatRepo.Get(ctx, s.testData.seat.ID)
	s.NoError(err)
	s.True(st.ActiveUntil.Equal(s.testData.seat.ActiveUntil))

	resp, err := s.service.RenewSeat(ctx, s.testData.seat.ID, dto.RenewSeatRequest{
		Months: lo.ToPtr(2),
	})
	s.NoError(err)

	s.True(preview.NewExpiry.Equal(resp.Seat.ActiveUntil))
	s.True(preview.CurrentExpiry.Equal(resp.Log.DueOn))
	s.True(preview.PeriodStart.Equal(resp.Log.PeriodStart))
	s.True(preview.PeriodEnd.Equal(resp.Log.PeriodEnd))
	s.Equal(preview.Lapsed, resp.Lapsed)
	s.Equal(preview.ExpiredAfter, resp.ExpiredAfter)
}

func (s *RenewalServiceSuite) TestPreviewCorrection() {
	preview, err := s.service.PreviewRenewal(s.GetContext(), s.testData.seat.ID, -1)
	s.NoError(err)
	s.True(preview.NewExpiry.Equal(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)))
	// Suggested amount uses the magnitude, never a negative price.
	s.True(preview.SuggestedAmount.Equal(decimal.NewFromInt(5)))
	s.True(preview.ExpiredAfter)
}

func (s *RenewalServiceSuite) TestSeatLedgerOrdering() {
	ctx := s.GetContext()

	_, err := s.service.RenewSeat(ctx, s.testData.seat.ID, dto.RenewSeatRequest{})
	s.NoError(err)

	s.GetClock().SetNow(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	_, err = s.service.RenewSeat(ctx, s.testData.seat.ID, dto.RenewSeatRequest{
		Months: lo.ToPtr(-1),
	})
	s.NoError(err)

	resp, err := s.service.ListSeatLedger(ctx, s.testData.seat.ID)
	s.NoError(err)
	s.Equal(2, resp.Total)
	// Most recent payment first; both rows intact, the correction as its
	// own row rather than an edit of history.
	s.True(resp.Items[0].IsCorrection())
	s.False(resp.Items[1].IsCorrection())
	s.Equal(1, resp.Items[1].MonthsRenewed)
}
