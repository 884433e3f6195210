package profile

import "context"

type Repository interface {
	// GetByID returns ErrNotFound when no row matches.
	GetByID(ctx context.Context, id string) (*Profile, error)
	Count(ctx context.Context) (int64, error)
}
