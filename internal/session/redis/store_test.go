package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/gobrains/brains/internal/dependencies/mocks"
	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/session"
)

type StoreSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	clock *mocks.MockClock
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.store = New(client, s.clock)
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StoreSuite) newSession(token string) *session.Session {
	now := s.clock.Now()
	return &session.Session{
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func (s *StoreSuite) TestSaveAndGetRoundTrips() {
	sess := s.newSession("sess_abc")
	sess.UserID = "u1"
	sess.Game.SecretNumber = 42
	sess.Game.Attempts = 3

	s.Require().NoError(s.store.Save(s.ctx, sess))

	stored, err := s.store.Get(s.ctx, "sess_abc")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), stored.UserID)
	s.Equal(42, stored.Game.SecretNumber)
	s.Equal(3, stored.Game.Attempts)
}

func (s *StoreSuite) TestGetUnknownToken() {
	_, err := s.store.Get(s.ctx, "sess_missing")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StoreSuite) TestSaveSetsExpiry() {
	sess := s.newSession("sess_abc")
	s.Require().NoError(s.store.Save(s.ctx, sess))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.store.Get(s.ctx, "sess_abc")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StoreSuite) TestDeleteRemovesSession() {
	sess := s.newSession("sess_abc")
	s.Require().NoError(s.store.Save(s.ctx, sess))

	s.Require().NoError(s.store.Delete(s.ctx, "sess_abc"))

	_, err := s.store.Get(s.ctx, "sess_abc")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
