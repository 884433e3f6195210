package profile

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "farmlend-backend/internal/domain/profile"
	"farmlend-backend/internal/session"
)

// sweepInterval bounds how often Resolve scans for expired entries.
const sweepInterval = time.Minute

type cached struct {
	p       *domain.Profile
	expires time.Time
}

// Resolver turns a session into the caller's profile. Results are kept per
// session token until the session expires or a signed_out event arrives.
type Resolver struct {
	repo domain.Repository
	now  func() time.Time

	mu        sync.RWMutex
	byToken   map[string]cached
	lastSweep time.Time
}

func NewResolver(r domain.Repository) *Resolver {
	return &Resolver{repo: r, now: time.Now, byToken: make(map[string]cached)}
}

func (r *Resolver) Resolve(ctx context.Context, s session.Session) (*domain.Profile, error) {
	now := r.now()
	r.mu.RLock()
	c, ok := r.byToken[s.Token]
	r.mu.RUnlock()
	if ok {
		if now.Before(c.expires) {
			return c.p, nil
		}
		r.Forget(s.Token)
	}

	p, err := r.repo.GetByID(ctx, s.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve profile %s: %w", s.UserID, err)
	}
	if !p.Role.Valid() {
		return nil, fmt.Errorf("resolve profile %s: %w", s.UserID, domain.ErrUnknownRole)
	}

	if s.Token != "" && now.Before(s.ExpiresAt) {
		r.mu.Lock()
		r.byToken[s.Token] = cached{p: p, expires: s.ExpiresAt}
		if now.Sub(r.lastSweep) >= sweepInterval {
			r.sweepLocked(now)
		}
		r.mu.Unlock()
	}
	return p, nil
}

// Sweep drops every entry whose session has expired. Sessions that lapse
// through the store TTL never send signed_out.
func (r *Resolver) Sweep() {
	r.mu.Lock()
	r.sweepLocked(r.now())
	r.mu.Unlock()
}

func (r *Resolver) sweepLocked(now time.Time) {
	for tok, c := range r.byToken {
		if !now.Before(c.expires) {
			delete(r.byToken, tok)
		}
	}
	r.lastSweep = now
}

// HandleEvent is meant to be passed to session.Store.Subscribe.
func (r *Resolver) HandleEvent(ev session.Event) {
	if ev.Type == session.EventSignedOut {
		r.Forget(ev.Token)
	}
}

func (r *Resolver) Forget(token string) {
	r.mu.Lock()
	delete(r.byToken, token)
	r.mu.Unlock()
}

// Count of the registered profiles.
func (r *Resolver) Count(ctx context.Context) (int64, error) {
	return r.repo.Count(ctx)
}
