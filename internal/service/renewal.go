package service

import (
	"context"
	"fmt"
	"time"

	"github.com/resello/resello/internal/api/dto"
	"github.com/resello/resello/internal/domain/renewal"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type RenewalService interface {
	// RenewSeat extends a seat's paid-through date (months > 0) or applies a
	// retroactive correction (months < 0), writing exactly one ledger row.
	RenewSeat(ctx context.Context, seatID string, req dto.RenewSeatRequest) (*dto.RenewalResponse, error)

	// BulkRenewSeats applies one shared positive extension to many seats in
	// a single transaction, one ledger row per seat, each independently
	// anchored. Any missing seat aborts the whole batch.
	BulkRenewSeats(ctx context.Context, req dto.BulkRenewRequest) (*dto.BulkRenewalResponse, error)

	// RenewPlatform records an upstream payment and extends the
	// subscription's own paid-through date by one period.
	RenewPlatform(ctx context.Context, subscriptionID string, req dto.RenewPlatformRequest) (*dto.PlatformRenewalResponse, error)

	// PreviewRenewal computes the outcome of RenewSeat without committing
	// anything, using the identical date math.
	PreviewRenewal(ctx context.Context, seatID string, months int) (*dto.RenewalPreview, error)

	ListSeatLedger(ctx context.Context, seatID string) (*dto.SeatLedgerResponse, error)
	ListPlatformLedger(ctx context.Context, subscriptionID string) (*dto.PlatformLedgerResponse, error)
}

type renewalService struct {
	ServiceParams
}

func NewRenewalService(params ServiceParams) RenewalService {
	return &renewalService{ServiceParams: params}
}

// renewalDates is the single source of truth for renewal period arithmetic,
// shared by the commit paths and the preview so they can never diverge.
type renewalDates struct {
	CurrentExpiry time.Time
	NewExpiry     time.Time
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Lapsed        bool
	ExpiredAfter  bool
}

// computeRenewalDates applies the signed-months contract:
//
//   - months > 0 extends from max(currentExpiry, today): a lapsed seat
//     renews from today so no back-dated coverage is silently granted,
//     while a still-current seat stacks on its existing expiry.
//   - months < 0 corrects from currentExpiry regardless of today; pushing
//     the seat into an expired state is a valid outcome.
func computeRenewalDates(activeUntil, now time.Time, months int) renewalDates {
	currentExpiry := types.StartOfDay(activeUntil)
	today := types.StartOfDay(now)

	d := renewalDates{CurrentExpiry: currentExpiry}

	if months > 0 {
		d.Lapsed = currentExpiry.Before(today)
		base := types.MaxTime(currentExpiry, today)
		d.NewExpiry = types.AddMonths(base, months)
		d.PeriodStart = types.AddDays(currentExpiry, 1)
		d.PeriodEnd = d.NewExpiry
	} else {
		d.NewExpiry = types.AddMonths(currentExpiry, months)
		d.PeriodStart = d.NewExpiry
		d.PeriodEnd = currentExpiry
	}

	d.ExpiredAfter = d.NewExpiry.Before(today)
	return d
}

func (s *renewalService) RenewSeat(ctx context.Context, seatID string, req dto.RenewSeatRequest) (*dto.RenewalResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	months := req.GetMonths()
	now := s.Clock.Now()

	var resp *dto.RenewalResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		st, err := s.SeatRepo.GetForUpdate(ctx, seatID)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Seat not found").
				WithReportableDetails(map[string]any{
					"seat_id": seatID,
				}).
				Mark(ierr.ErrNotFound)
		}

		dates := computeRenewalDates(st.ActiveUntil, now, months)

		paid := st.CustomPrice
		if req.AmountPaid != nil {
			paid = *req.AmountPaid
		}

		notes := req.Notes
		if months < 0 {
			if notes == "" {
				notes = fmt.Sprintf("Adjusted expiry by %d month(s)", months)
			}
			notes = types.TagRenewalNotes(notes, types.RenewalNoteTagCorrection)
		}

		log := &renewal.Log{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RENEWAL_LOG),
			SeatID:         st.ID,
			Reference:      types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_RENEWAL),
			AmountPaid:     paid,
			ExpectedAmount: st.CustomPrice,
			PeriodStart:    dates.PeriodStart,
			PeriodEnd:      dates.PeriodEnd,
			PaidOn:         types.StartOfDay(now),
			// DueOn must be the expiry as observed before this operation
			// mutates the seat; reading it afterwards would corrupt every
			// lateness aggregate downstream.
			DueOn:         dates.CurrentExpiry,
			MonthsRenewed: months,
			Notes:         notes,
			BaseModel:     types.GetDefaultBaseModel(ctx),
		}

		if err := s.RenewalRepo.Create(ctx, log); err != nil {
			return err
		}

		// Status is deliberately untouched: a paused seat can receive a
		// correction without becoming active.
		st.ActiveUntil = dates.NewExpiry
		if err := s.SeatRepo.Update(ctx, st); err != nil {
			return err
		}

		resp = &dto.RenewalResponse{
			Seat:         st,
			Log:          log,
			Lapsed:       dates.Lapsed,
			ExpiredAfter: dates.ExpiredAfter,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("renewed seat",
		"seat_id", seatID,
		"months", months,
		"new_expiry", resp.Seat.ActiveUntil,
		"amount_paid", resp.Log.AmountPaid,
		"lapsed", resp.Lapsed,
	)
	return resp, nil
}

func (s *renewalService) BulkRenewSeats(ctx context.Context, req dto.BulkRenewRequest) (*dto.BulkRenewalResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	monthsDec := decimal.NewFromInt(int64(req.Months))

	resp := &dto.BulkRenewalResponse{}
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		for _, item := range req.Items {
			st, err := s.SeatRepo.GetForUpdate(ctx, item.SeatID)
			if err != nil {
				// All or nothing: one unknown seat fails the whole batch.
				return ierr.WithError(err).
					WithHint("Seat not found, bulk renewal aborted").
					WithReportableDetails(map[string]any{
						"seat_id": item.SeatID,
					}).
					Mark(ierr.ErrNotFound)
			}

			if st.IsCancelled() {
				return ierr.NewError("seat is cancelled").
					WithHint("Cancelled seats cannot be bulk renewed").
					WithReportableDetails(map[string]any{
						"seat_id": st.ID,
					}).
					Mark(ierr.ErrInvalidOperation)
			}

			dates := computeRenewalDates(st.ActiveUntil, now, req.Months)

			// Bulk defaults to the full multi-month amount; the single-seat
			// path does not multiply.
			paid := st.CustomPrice.Mul(monthsDec)
			if item.AmountPaid != nil {
				paid = *item.AmountPaid
			}

			log := &renewal.Log{
				ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RENEWAL_LOG),
				SeatID:         st.ID,
				Reference:      types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_RENEWAL),
				AmountPaid:     paid,
				ExpectedAmount: st.CustomPrice,
				PeriodStart:    dates.PeriodStart,
				PeriodEnd:      dates.PeriodEnd,
				PaidOn:         types.StartOfDay(now),
				DueOn:          dates.CurrentExpiry,
				MonthsRenewed:  req.Months,
				Notes:          types.TagRenewalNotes(req.Notes, types.RenewalNoteTagBulk),
				BaseModel:      types.GetDefaultBaseModel(ctx),
			}

			if err := s.RenewalRepo.Create(ctx, log); err != nil {
				return err
			}

			// Bulk renewal always brings the seat current: a paused seat is
			// reactivated by the payment.
			st.ActiveUntil = dates.NewExpiry
			st.SeatStatus = types.SeatStatusActive
			st.LeftAt = nil
			st.RemainingDays = nil
			if err := s.SeatRepo.Update(ctx, st); err != nil {
				return err
			}

			resp.Items = append(resp.Items, &dto.RenewalResponse{
				Seat:         st,
				Log:          log,
				Lapsed:       dates.Lapsed,
				ExpiredAfter: dates.ExpiredAfter,
			})
		}

		resp.RenewedCount = len(resp.Items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("bulk renewed seats",
		"renewed_count", resp.RenewedCount,
		"months", req.Months,
	)
	return resp, nil
}

func (s *renewalService) RenewPlatform(ctx context.Context, subscriptionID string, req dto.RenewPlatformRequest) (*dto.PlatformRenewalResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.Clock.Now()

	var resp *dto.PlatformRenewalResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.SubRepo.GetForUpdate(ctx, subscriptionID)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Subscription not found").
				WithReportableDetails(map[string]any{
					"subscription_id": subscriptionID,
				}).
				Mark(ierr.ErrNotFound)
		}

		paid := decimal.Zero
		if req.AmountPaid != nil {
			paid = *req.AmountPaid
		} else {
			p, err := s.PlanRepo.Get(ctx, sub.PlanID)
			if err != nil {
				return err
			}
			paid = p.Cost
		}

		// Platform billing always extends from the current expiry. There is
		// no lapse anchoring here: the reseller's own upstream payments are
		// assumed never to lapse, asymmetric with client-seat renewal.
		currentExpiry := types.StartOfDay(sub.ActiveUntil)
		newExpiry := types.AddMonths(currentExpiry, 1)

		pr := &renewal.PlatformRenewal{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLATFORM_RENEWAL),
			SubscriptionID: sub.ID,
			Reference:      types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_PLATFORM_RENEWAL),
			AmountPaid:     paid,
			PeriodStart:    types.AddDays(currentExpiry, 1),
			PeriodEnd:      newExpiry,
			PaidOn:         types.StartOfDay(now),
			BaseModel:      types.GetDefaultBaseModel(ctx),
		}

		if err := s.PlatformRenewalRepo.Create(ctx, pr); err != nil {
			return err
		}

		sub.ActiveUntil = newExpiry
		if err := s.SubRepo.Update(ctx, sub); err != nil {
			return err
		}

		resp = &dto.PlatformRenewalResponse{
			Subscription: sub,
			Renewal:      pr,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("renewed platform subscription",
		"subscription_id", subscriptionID,
		"new_expiry", resp.Subscription.ActiveUntil,
		"amount_paid", resp.Renewal.AmountPaid,
	)
	return resp, nil
}

func (s *renewalService) PreviewRenewal(ctx context.Context, seatID string, months int) (*dto.RenewalPreview, error) {
	if err := types.ValidateRenewalMonths(months); err != nil {
		return nil, err
	}

	st, err := s.SeatRepo.Get(ctx, seatID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Seat not found").
			WithReportableDetails(map[string]any{
				"seat_id": seatID,
			}).
			Mark(ierr.ErrNotFound)
	}

	dates := computeRenewalDates(st.ActiveUntil, s.Clock.Now(), months)
	magnitude := lo.Ternary(months < 0, -months, months)

	return &dto.RenewalPreview{
		SeatID:          st.ID,
		CurrentExpiry:   dates.CurrentExpiry,
		NewExpiry:       dates.NewExpiry,
		PeriodStart:     dates.PeriodStart,
		PeriodEnd:       dates.PeriodEnd,
		SuggestedAmount: st.CustomPrice.Mul(decimal.NewFromInt(int64(magnitude))),
		Lapsed:          dates.Lapsed,
		ExpiredAfter:    dates.ExpiredAfter,
	}, nil
}

func (s *renewalService) ListSeatLedger(ctx context.Context, seatID string) (*dto.SeatLedgerResponse, error) {
	if _, err := s.SeatRepo.Get(ctx, seatID); err != nil {
		return nil, err
	}

	logs, err := s.RenewalRepo.ListBySeat(ctx, seatID)
	if err != nil {
		return nil, err
	}

	return &dto.SeatLedgerResponse{Items: logs, Total: len(logs)}, nil
}

func (s *renewalService) ListPlatformLedger(ctx context.Context, subscriptionID string) (*dto.PlatformLedgerResponse, error) {
	if _, err := s.SubRepo.Get(ctx, subscriptionID); err != nil {
		return nil, err
	}

	items, err := s.PlatformRenewalRepo.ListBySubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	return &dto.PlatformLedgerResponse{Items: items, Total: len(items)}, nil
}
