package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gobrains/brains/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) createUser(id, name string) *model.User {
	user := &model.User{ID: model.UserID(id), Username: name, Email: name + "@example.com"}
	s.Require().NoError(s.storage.CreateUser(s.ctx, user))
	return user
}

func (s *StorageSuite) createTeam(id, name string) *model.Team {
	team := &model.Team{ID: model.TeamID(id), Name: name}
	s.Require().NoError(s.storage.CreateTeam(s.ctx, team))
	return team
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	s.createUser("u1", "alice")

	user, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "missing")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestCreateUserDuplicateEmail() {
	s.createUser("u1", "alice")

	err := s.storage.CreateUser(s.ctx, &model.User{ID: "u2", Username: "bob", Email: "alice@example.com"})
	s.ErrorIs(err, model.ErrEmailTaken)
}

func (s *StorageSuite) TestCreateUserDuplicateUsername() {
	s.createUser("u1", "alice")

	err := s.storage.CreateUser(s.ctx, &model.User{ID: "u2", Username: "alice", Email: "other@example.com"})
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *StorageSuite) TestGetUserByEmail() {
	s.createUser("u1", "alice")

	user, err := s.storage.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), user.ID)

	_, err = s.storage.GetUserByEmail(s.ctx, "missing@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	s.createUser("u1", "alice")

	user, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), user.ID)
}

func (s *StorageSuite) TestSaveUser() {
	user := s.createUser("u1", "alice")
	user.AttemptsTotal = 7

	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	stored, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(7, stored.AttemptsTotal)
}

func (s *StorageSuite) TestSaveUnknownUserFails() {
	err := s.storage.SaveUser(s.ctx, &model.User{ID: "missing"})
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestListUsersKeepsInsertionOrder() {
	s.createUser("u1", "alice")
	s.createUser("u2", "bob")
	s.createUser("u3", "carol")

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(users, 3)
	s.Equal("alice", users[0].Username)
	s.Equal("bob", users[1].Username)
	s.Equal("carol", users[2].Username)
}

func (s *StorageSuite) TestGetUsersSkipsMissing() {
	s.createUser("u1", "alice")

	users, err := s.storage.GetUsers(s.ctx, []model.UserID{"u1", "missing"})
	s.Require().NoError(err)
	s.Len(users, 1)
}

func (s *StorageSuite) TestAddUserAttempts() {
	s.createUser("u1", "alice")

	s.Require().NoError(s.storage.AddUserAttempts(s.ctx, "u1", 3))
	s.Require().NoError(s.storage.AddUserAttempts(s.ctx, "u1", 4))

	user, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(7, user.AttemptsTotal)
}

func (s *StorageSuite) TestAddUserAttemptsUnknownUser() {
	err := s.storage.AddUserAttempts(s.ctx, "missing", 3)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestReturnedUserIsACopy() {
	s.createUser("u1", "alice")

	user, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	user.Username = "mutated"

	stored, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("alice", stored.Username)
}

// Team tests

func (s *StorageSuite) TestCreateAndGetTeam() {
	s.createTeam("t1", "Red Team")

	team, err := s.storage.GetTeam(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal("Red Team", team.Name)
}

func (s *StorageSuite) TestCreateTeamDuplicateName() {
	s.createTeam("t1", "Red Team")

	err := s.storage.CreateTeam(s.ctx, &model.Team{ID: "t2", Name: "Red Team"})
	s.ErrorIs(err, model.ErrTeamNameTaken)
}

func (s *StorageSuite) TestListTeamsKeepsInsertionOrder() {
	s.createTeam("t1", "Red Team")
	s.createTeam("t2", "Blue Team")

	teams, err := s.storage.ListTeams(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(teams, 2)
	s.Equal("Red Team", teams[0].Name)
	s.Equal("Blue Team", teams[1].Name)
}

func (s *StorageSuite) TestJoinTeamWritesBothSides() {
	s.createUser("u1", "alice")
	s.createTeam("t1", "Red Team")

	s.Require().NoError(s.storage.JoinTeam(s.ctx, "t1", "u1"))

	user, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(model.TeamID("t1"), user.TeamID)

	team, err := s.storage.GetTeam(s.ctx, "t1")
	s.Require().NoError(err)
	s.True(team.HasMember("u1"))
}

func (s *StorageSuite) TestJoinTeamIsIdempotent() {
	s.createUser("u1", "alice")
	s.createTeam("t1", "Red Team")

	s.Require().NoError(s.storage.JoinTeam(s.ctx, "t1", "u1"))
	s.Require().NoError(s.storage.JoinTeam(s.ctx, "t1", "u1"))

	team, err := s.storage.GetTeam(s.ctx, "t1")
	s.Require().NoError(err)
	s.Len(team.Members, 1)
}

func (s *StorageSuite) TestJoinTeamMovesUserFromPreviousTeam() {
	s.createUser("u1", "alice")
	s.createTeam("t1", "Red Team")
	s.createTeam("t2", "Blue Team")

	s.Require().NoError(s.storage.JoinTeam(s.ctx, "t1", "u1"))
	s.Require().NoError(s.storage.JoinTeam(s.ctx, "t2", "u1"))

	red, err := s.storage.GetTeam(s.ctx, "t1")
	s.Require().NoError(err)
	s.False(red.HasMember("u1"))

	blue, err := s.storage.GetTeam(s.ctx, "t2")
	s.Require().NoError(err)
	s.True(blue.HasMember("u1"))
}

func (s *StorageSuite) TestJoinUnknownTeam() {
	s.createUser("u1", "alice")

	err := s.storage.JoinTeam(s.ctx, "missing", "u1")
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *StorageSuite) TestJoinTeamUnknownUser() {
	s.createTeam("t1", "Red Team")

	err := s.storage.JoinTeam(s.ctx, "t1", "missing")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestLeaveTeam() {
	s.createUser("u1", "alice")
	s.createTeam("t1", "Red Team")
	s.Require().NoError(s.storage.JoinTeam(s.ctx, "t1", "u1"))

	s.Require().NoError(s.storage.LeaveTeam(s.ctx, "u1"))

	user, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Empty(user.TeamID)

	team, err := s.storage.GetTeam(s.ctx, "t1")
	s.Require().NoError(err)
	s.False(team.HasMember("u1"))
}

func (s *StorageSuite) TestLeaveTeamWithoutMembership() {
	s.createUser("u1", "alice")

	err := s.storage.LeaveTeam(s.ctx, "u1")
	s.ErrorIs(err, model.ErrNotInTeam)
}
