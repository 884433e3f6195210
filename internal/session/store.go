package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "session:"
	EventsChannel = "session:events"
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(token string) string { return keyPrefix + token }

// Issue creates a session for userID. Production sessions come from the auth
// platform; this exists for local development and tests.
func (s *Store) Issue(ctx context.Context, userID string) (Session, error) {
	now := time.Now().UTC()
	sess := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	payload, _ := json.Marshal(sess)
	if err := s.rdb.Set(ctx, key(sess.Token), payload, s.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	s.publish(ctx, Event{Type: EventSignedIn, Token: sess.Token, UserID: userID, At: now})
	return sess, nil
}

func (s *Store) Get(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNoSession
	}
	raw, err := s.rdb.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// SignOut drops the session and tells subscribers about it. Signing out an
// unknown token is ErrNoSession.
func (s *Store) SignOut(ctx context.Context, token string) error {
	sess, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.publish(ctx, Event{Type: EventSignedOut, Token: token, UserID: sess.UserID, At: time.Now().UTC()})
	return nil
}

func (s *Store) publish(ctx context.Context, ev Event) {
	payload, _ := json.Marshal(ev)
	// best effort: a missed event only delays eviction until the session expires
	_ = s.rdb.Publish(ctx, EventsChannel, payload).Err()
}

// Subscribe delivers session events to fn on a single goroutine until the
// returned func is called. The returned func blocks until that goroutine exits.
func (s *Store) Subscribe(ctx context.Context, fn func(Event)) (func(), error) {
	ps := s.rdb.Subscribe(ctx, EventsChannel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", EventsChannel, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range ps.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				continue
			}
			fn(ev)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = ps.Close()
			<-done
		})
	}, nil
}
