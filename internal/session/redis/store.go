package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gobrains/brains/internal/dependencies/clock"
	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/session"
)

// Store is a Redis-backed implementation of the session store. Each
// session is a JSON value expiring with the session itself, so abandoned
// browser sessions clean themselves up.
type Store struct {
	client *redis.Client
	clock  clock.Clock
}

// New creates a Redis session store on an existing client
func New(client *redis.Client, clk clock.Clock) *Store {
	return &Store{client: client, clock: clk}
}

// Ensure Store implements the interface
var _ session.Store = (*Store)(nil)

func sessionKey(token string) string {
	return fmt.Sprintf("brains:session:%s", token)
}

func (s *Store) Get(ctx context.Context, token string) (*session.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	ttl := sess.ExpiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		ttl = time.Second
	}
	return s.client.Set(ctx, sessionKey(sess.Token), data, ttl).Err()
}

func (s *Store) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
