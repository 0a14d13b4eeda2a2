package service

import (
	"context"

	"github.com/resello/resello/internal/api/dto"
	"github.com/resello/resello/internal/domain/seat"
	ierr "github.com/resello/resello/internal/errors"
	"github.com/resello/resello/internal/types"
	"github.com/samber/lo"
)

type SeatService interface {
	// CreateSeat assigns a client to a subscription, enforcing the plan's
	// seat ceiling and computing the initial paid-through date.
	CreateSeat(ctx context.Context, req dto.CreateSeatRequest) (*dto.SeatResponse, error)
	GetSeat(ctx context.Context, id string) (*dto.SeatResponse, error)
	// UpdateSeatStatus applies one lifecycle transition:
	// pause, resume, cancel or update_price.
	UpdateSeatStatus(ctx context.Context, id string, req dto.SeatStatusChangeRequest) (*dto.SeatResponse, error)
}

type seatService struct {
	ServiceParams
}

func NewSeatService(params ServiceParams) SeatService {
	return &seatService{ServiceParams: params}
}

func (s *seatService) CreateSeat(ctx context.Context, req dto.CreateSeatRequest) (*dto.SeatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, req.SubscriptionID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Subscription not found").
			WithReportableDetails(map[string]any{
				"subscription_id": req.SubscriptionID,
			}).
			Mark(ierr.ErrNotFound)
	}

	p, err := s.PlanRepo.Get(ctx, sub.PlanID)
	if err != nil {
		return nil, err
	}

	newSeat := req.ToSeat(ctx, s.Clock.Now())

	// Capacity check and insert share one transaction so two concurrent
	// creations cannot both pass the same ceiling.
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		occupied, err := s.SeatRepo.CountOccupied(ctx, sub.ID)
		if err != nil {
			return err
		}

		if err := seat.CheckCapacity(p.MaxSeats, occupied, 1); err != nil {
			return err
		}

		return s.SeatRepo.Create(ctx, newSeat)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created seat",
		"seat_id", newSeat.ID,
		"subscription_id", newSeat.SubscriptionID,
		"client_id", newSeat.ClientID,
		"active_until", newSeat.ActiveUntil,
	)
	return &dto.SeatResponse{Seat: newSeat}, nil
}

func (s *seatService) GetSeat(ctx context.Context, id string) (*dto.SeatResponse, error) {
	st, err := s.SeatRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SeatResponse{Seat: st}, nil
}

func (s *seatService) UpdateSeatStatus(ctx context.Context, id string, req dto.SeatStatusChangeRequest) (*dto.SeatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *seat.Seat
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		st, err := s.SeatRepo.GetForUpdate(ctx, id)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Seat not found").
				WithReportableDetails(map[string]any{
					"seat_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}

		if st.IsCancelled() {
			return ierr.NewError("seat is cancelled").
				WithHint("A cancelled seat cannot be modified").
				WithReportableDetails(map[string]any{
					"seat_id": st.ID,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		today := types.StartOfDay(s.Clock.Now())
		changed := true

		switch req.Action {
		case types.SeatActionPause:
			if st.SeatStatus == types.SeatStatusPaused {
				// Repeating a pause must not recompute the frozen day count
				// from the stale expiry, so it is a no-op.
				changed = false
				break
			}
			remaining := types.DaysBetween(today, st.ActiveUntil)
			if remaining < 0 {
				remaining = 0
			}
			st.SeatStatus = types.SeatStatusPaused
			st.LeftAt = lo.ToPtr(today)
			st.RemainingDays = lo.ToPtr(remaining)
			// ActiveUntil stays stale until a resume recomputes it.

		case types.SeatActionResume:
			if st.SeatStatus == types.SeatStatusActive {
				changed = false
				break
			}
			days := lo.FromPtr(st.RemainingDays)
			if days > 0 {
				st.ActiveUntil = types.AddDays(today, days)
			} else {
				// A fully consumed pause resumes already expired; it does
				// not grant extra days.
				st.ActiveUntil = today
			}
			st.SeatStatus = types.SeatStatusActive
			st.LeftAt = nil
			st.RemainingDays = nil

		case types.SeatActionCancel:
			st.SeatStatus = types.SeatStatusCancelled
			st.LeftAt = lo.ToPtr(today)
			st.RemainingDays = nil
			// ActiveUntil is retained as a historical record.

		case types.SeatActionUpdatePrice:
			st.CustomPrice = *req.CustomPrice
		}

		if changed {
			if err := s.SeatRepo.Update(ctx, st); err != nil {
				return err
			}
		}

		updated = st
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("seat lifecycle transition",
		"seat_id", updated.ID,
		"action", req.Action,
		"seat_status", updated.SeatStatus,
	)
	return &dto.SeatResponse{Seat: updated}, nil
}
