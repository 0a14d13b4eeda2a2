package plan

import (
	"github.com/resello/resello/internal/types"
	"github.com/shopspring/decimal"
)

// Plan is a purchasable tier of a platform: what the reseller pays upstream
// per period and how many client seats one subscription on it may hold.
type Plan struct {
	ID         string          `db:"id" json:"id"`
	PlatformID string          `db:"platform_id" json:"platform_id"`
	Name       string          `db:"name" json:"name"`
	Cost       decimal.Decimal `db:"cost" json:"cost"`
	// MaxSeats is the seat ceiling for a subscription on this plan.
	// Nil means unlimited.
	MaxSeats *int `db:"max_seats" json:"max_seats,omitempty"`
	IsActive bool `db:"is_active" json:"is_active"`
	types.BaseModel
}
