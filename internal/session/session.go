// Package session provides the per-browser-session state that the rest of
// the application works against: the current game and, once logged in, a
// reference to the authenticated user. Sessions are explicit values loaded
// from a pluggable token-keyed store; nothing in the application relies on
// ambient mutable state.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/gobrains/brains/internal/dependencies/clock"
	"github.com/gobrains/brains/internal/model"
)

// Session is one browser session's server-side state
type Session struct {
	Token string `json:"token"`
	// UserID references the authenticated principal, empty when anonymous
	UserID    model.UserID    `json:"user_id,omitempty"`
	Game      model.GameState `json:"game"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Authenticated reports whether a principal is attached to the session
func (s *Session) Authenticated() bool {
	return s.UserID != ""
}

// Store persists sessions keyed by token
type Store interface {
	Get(ctx context.Context, token string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, token string) error
}

// Config holds configuration for the session manager
type Config struct {
	TTL time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		TTL: 24 * time.Hour,
	}
}

// Manager creates, loads and destroys sessions on top of a Store
type Manager struct {
	store Store
	clock clock.Clock
	ttl   time.Duration
}

// NewManager creates a session manager
func NewManager(store Store, clk clock.Clock, cfg Config) *Manager {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Manager{
		store: store,
		clock: clk,
		ttl:   cfg.TTL,
	}
}

// Create makes a fresh anonymous session and persists it
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	now := m.clock.Now()
	sess := &Session{
		Token:     generateToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session by token. Expired sessions are deleted and reported
// as not found, so callers treat them the same as a missing session.
func (m *Manager) Get(ctx context.Context, token string) (*Session, error) {
	sess, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if m.clock.Now().After(sess.ExpiresAt) {
		_ = m.store.Delete(ctx, token)
		return nil, model.ErrSessionNotFound
	}
	return sess, nil
}

// Save persists session mutations
func (m *Manager) Save(ctx context.Context, sess *Session) error {
	return m.store.Save(ctx, sess)
}

// Destroy removes the session record
func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

// generateToken generates a random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
