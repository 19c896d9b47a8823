package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gobrains/brains/internal/dependencies/mocks"
	"github.com/gobrains/brains/internal/model"
)

// memStore is a minimal in-process store for manager tests
type memStore struct {
	sessions map[string]Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]Session)}
}

func (m *memStore) Get(ctx context.Context, token string) (*Session, error) {
	sess, ok := m.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return &sess, nil
}

func (m *memStore) Save(ctx context.Context, sess *Session) error {
	m.sessions[sess.Token] = *sess
	return nil
}

func (m *memStore) Delete(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

type ManagerSuite struct {
	suite.Suite
	store   *memStore
	clock   *mocks.MockClock
	manager *Manager
	ctx     context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.store = newMemStore()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.manager = NewManager(s.store, s.clock, Config{TTL: time.Hour})
	s.ctx = context.Background()
}

func (s *ManagerSuite) TestCreatePersistsAnonymousSession() {
	sess, err := s.manager.Create(s.ctx)
	s.Require().NoError(err)

	s.True(strings.HasPrefix(sess.Token, "sess_"))
	s.False(sess.Authenticated())
	s.Equal(s.clock.Now(), sess.CreatedAt)
	s.Equal(s.clock.Now().Add(time.Hour), sess.ExpiresAt)

	stored, err := s.manager.Get(s.ctx, sess.Token)
	s.Require().NoError(err)
	s.Equal(sess.Token, stored.Token)
}

func (s *ManagerSuite) TestCreateGeneratesUniqueTokens() {
	a, err := s.manager.Create(s.ctx)
	s.Require().NoError(err)
	b, err := s.manager.Create(s.ctx)
	s.Require().NoError(err)

	s.NotEqual(a.Token, b.Token)
}

func (s *ManagerSuite) TestGetUnknownToken() {
	_, err := s.manager.Get(s.ctx, "sess_missing")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ManagerSuite) TestGetExpiredSessionDeletesIt() {
	sess, err := s.manager.Create(s.ctx)
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)

	_, err = s.manager.Get(s.ctx, sess.Token)
	s.ErrorIs(err, model.ErrSessionNotFound)
	s.NotContains(s.store.sessions, sess.Token)
}

func (s *ManagerSuite) TestSavePersistsMutations() {
	sess, err := s.manager.Create(s.ctx)
	s.Require().NoError(err)

	sess.UserID = "u1"
	sess.Game.SecretNumber = 42
	sess.Game.Attempts = 3
	s.Require().NoError(s.manager.Save(s.ctx, sess))

	stored, err := s.manager.Get(s.ctx, sess.Token)
	s.Require().NoError(err)
	s.True(stored.Authenticated())
	s.Equal(42, stored.Game.SecretNumber)
	s.Equal(3, stored.Game.Attempts)
}

func (s *ManagerSuite) TestDestroyRemovesSession() {
	sess, err := s.manager.Create(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.manager.Destroy(s.ctx, sess.Token))

	_, err = s.manager.Get(s.ctx, sess.Token)
	s.ErrorIs(err, model.ErrSessionNotFound)
}
