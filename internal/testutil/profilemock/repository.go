package profilemock

import (
	"context"

	domain "farmlend-backend/internal/domain/profile"
)

var _ domain.Repository = (*Repo)(nil)

// Repo serves GetByID from Profiles when GetByIDFn is unset.
type Repo struct {
	Profiles  map[string]*domain.Profile
	GetByIDFn func(ctx context.Context, id string) (*domain.Profile, error)
	CountFn   func(ctx context.Context) (int64, error)
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if p, ok := m.Profiles[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return int64(len(m.Profiles)), nil
}
