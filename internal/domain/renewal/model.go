package renewal

import (
	"time"

	"github.com/resello/resello/internal/types"
	"github.com/shopspring/decimal"
)

// Log is one immutable client-seat payment event. Rows are the audit trail
// for all revenue and payment-discipline analytics: once written they are
// never updated or deleted, and they survive seat cancellation.
type Log struct {
	ID     string `db:"id" json:"id"`
	SeatID string `db:"seat_id" json:"seat_id"`

	// Reference is the short human-facing receipt id, e.g. RN-X8Q2ZK.
	Reference string `db:"reference" json:"reference"`

	AmountPaid decimal.Decimal `db:"amount_paid" json:"amount_paid"`

	// ExpectedAmount is the seat's custom price at the time of payment,
	// kept for payment-discipline analytics.
	ExpectedAmount decimal.Decimal `db:"expected_amount" json:"expected_amount"`

	PeriodStart time.Time `db:"period_start" json:"period_start"`
	PeriodEnd   time.Time `db:"period_end" json:"period_end"`

	// PaidOn is the start of day of the operation.
	PaidOn time.Time `db:"paid_on" json:"paid_on"`

	// DueOn is the seat's expiry as observed immediately before this renewal
	// mutated it. Downstream analytics classify payments as on time
	// (PaidOn <= DueOn) or late from this field, so it must always be
	// captured pre-mutation.
	DueOn time.Time `db:"due_on" json:"due_on"`

	// MonthsRenewed is signed: negative denotes a correction.
	MonthsRenewed int `db:"months_renewed" json:"months_renewed"`

	Notes string `db:"notes" json:"notes"`

	types.BaseModel
}

// IsCorrection reports whether this row was written by a negative-months
// renewal.
func (l *Log) IsCorrection() bool {
	return l.MonthsRenewed < 0
}

// IsLate reports whether the payment landed after the seat's due date.
func (l *Log) IsLate() bool {
	return l.PaidOn.After(l.DueOn)
}

// DaysLate returns the lateness in whole days, rounding any partial day up.
// Zero for on-time rows.
func (l *Log) DaysLate() int {
	if !l.IsLate() {
		return 0
	}
	d := l.PaidOn.Sub(l.DueOn)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// PlatformRenewal is one immutable payment the reseller makes upstream.
// Platform renewals are always a forward one-period extension, never
// retroactive, so there is no due date, correction sign or expected amount.
type PlatformRenewal struct {
	ID             string          `db:"id" json:"id"`
	SubscriptionID string          `db:"subscription_id" json:"subscription_id"`
	Reference      string          `db:"reference" json:"reference"`
	AmountPaid     decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	PeriodStart    time.Time       `db:"period_start" json:"period_start"`
	PeriodEnd      time.Time       `db:"period_end" json:"period_end"`
	PaidOn         time.Time       `db:"paid_on" json:"paid_on"`

	types.BaseModel
}
