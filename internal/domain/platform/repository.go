package platform

import "context"

// Repository defines the interface for platform persistence
type Repository interface {
	Create(ctx context.Context, platform *Platform) error
	Get(ctx context.Context, id string) (*Platform, error)
	List(ctx context.Context) ([]*Platform, error)
	Update(ctx context.Context, platform *Platform) error
}
