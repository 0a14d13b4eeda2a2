package subscription

import (
	"time"

	"github.com/resello/resello/internal/types"
)

// Subscription is one purchased account slot on a platform plan, owned by
// exactly one tenant and subdivided into client seats.
type Subscription struct {
	ID         string `db:"id" json:"id"`
	PlanID     string `db:"plan_id" json:"plan_id"`
	PlatformID string `db:"platform_id" json:"platform_id"`
	Label      string `db:"label" json:"label"`

	StartDate time.Time `db:"start_date" json:"start_date"`

	// ActiveUntil is when the reseller's own access to the platform lapses.
	// It only ever advances through a platform renewal or an explicit edit;
	// it is independent of any individual seat's expiry.
	ActiveUntil time.Time `db:"active_until" json:"active_until"`

	SubscriptionStatus types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`

	types.BaseModel
}
