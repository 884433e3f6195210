package session

import (
	"context"
	"errors"
	"time"

	"farmlend-backend/internal/domain/profile"
)

var ErrNoSession = errors.New("no active session")

// Session is what the auth platform leaves behind after sign-in.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
)

type Event struct {
	Type   EventType `json:"type"`
	Token  string    `json:"token"`
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// Identity is the authenticated caller for one request.
type Identity struct {
	Session Session
	Profile *profile.Profile
}

func (i Identity) UserID() string { return i.Session.UserID }

func (i Identity) Role() profile.Role {
	if i.Profile == nil {
		return ""
	}
	return i.Profile.Role
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns ErrNoSession when the request was never authenticated.
func FromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok {
		return Identity{}, ErrNoSession
	}
	return id, nil
}
