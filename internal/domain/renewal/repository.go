package renewal

import "context"

// Repository is the append-only contract for the seat renewal ledger.
// There is deliberately no Update or Delete: corrections are written as new
// rows with negative months, never as edits to history.
type Repository interface {
	Create(ctx context.Context, log *Log) error
	Get(ctx context.Context, id string) (*Log, error)
	ListBySeat(ctx context.Context, seatID string) ([]*Log, error)
}

// PlatformRenewalRepository is the append-only contract for the upstream
// payment ledger.
type PlatformRenewalRepository interface {
	Create(ctx context.Context, pr *PlatformRenewal) error
	ListBySubscription(ctx context.Context, subscriptionID string) ([]*PlatformRenewal, error)
}
