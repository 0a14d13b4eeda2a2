package types

import (
	"strings"

	ierr "github.com/resello/resello/internal/errors"
	"github.com/samber/lo"
)

const (
	// DefaultRenewalMonths is applied when a renewal request omits the
	// months field.
	DefaultRenewalMonths = 1

	// MaxRenewalMonths bounds the magnitude of a single renewal or
	// correction. Anything larger is almost certainly a typo.
	MaxRenewalMonths = 12
)

const (
	// RenewalNoteTagCorrection marks ledger rows written by a negative-months
	// renewal. Appended automatically when the caller's notes are untagged.
	RenewalNoteTagCorrection = "[CORRECTION]"

	// RenewalNoteTagBulk marks ledger rows written by a bulk renewal.
	RenewalNoteTagBulk = "[BULK]"
)

// ValidateRenewalMonths enforces the signed months contract shared by the
// single-seat and bulk renewal paths: non-zero, magnitude capped.
func ValidateRenewalMonths(months int) error {
	if months == 0 {
		return ierr.NewError("months must be non-zero").
			WithHint("Use positive months to extend, negative months to correct").
			Mark(ierr.ErrValidation)
	}
	if months > MaxRenewalMonths || months < -MaxRenewalMonths {
		return ierr.NewError("months out of range").
			WithHintf("Months magnitude must be between 1 and %d", MaxRenewalMonths).
			WithReportableDetails(map[string]any{
				"months":     months,
				"max_months": MaxRenewalMonths,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TagRenewalNotes prefixes notes with tag unless they already carry it.
func TagRenewalNotes(notes, tag string) string {
	if strings.Contains(notes, tag) {
		return notes
	}
	if notes == "" {
		return tag
	}
	return tag + " " + notes
}

// SeatAction is the requested seat lifecycle transition. Each action has its
// own required and forbidden request fields so transitions are enforced by
// validation instead of conditional field patching.
type SeatAction string

const (
	SeatActionPause       SeatAction = "pause"
	SeatActionResume      SeatAction = "resume"
	SeatActionCancel      SeatAction = "cancel"
	SeatActionUpdatePrice SeatAction = "update_price"
)

func (a SeatAction) String() string {
	return string(a)
}

func (a SeatAction) Validate() error {
	allowed := []SeatAction{
		SeatActionPause,
		SeatActionResume,
		SeatActionCancel,
		SeatActionUpdatePrice,
	}
	if !lo.Contains(allowed, a) {
		return ierr.NewError("invalid seat action").
			WithHint("Invalid seat action").
			WithReportableDetails(map[string]any{
				"action":          a,
				"allowed_actions": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
