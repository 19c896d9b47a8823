package memory

import (
	"context"
	"sync"

	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// A single mutex covers every operation, so the multi-record mutations
// (JoinTeam, LeaveTeam) are trivially atomic.
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	emailIndex    map[string]model.UserID
	usernameIndex map[string]model.UserID
	// userOrder preserves insertion order so listings are stable
	userOrder []model.UserID

	teams         map[model.TeamID]*model.Team
	teamNameIndex map[string]model.TeamID
	teamOrder     []model.TeamID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		emailIndex:    make(map[string]model.UserID),
		usernameIndex: make(map[string]model.UserID),
		teams:         make(map[model.TeamID]*model.Team),
		teamNameIndex: make(map[string]model.TeamID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emailIndex[user.Email]; taken {
		return model.ErrEmailTaken
	}
	if _, taken := s.usernameIndex[user.Username]; taken {
		return model.ErrUsernameTaken
	}

	s.users[user.ID] = copyUser(user)
	s.emailIndex[user.Email] = user.ID
	s.usernameIndex[user.Username] = user.ID
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return copyUser(s.users[id]), nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return copyUser(s.users[id]), nil
}

func (s *Storage) GetUsers(ctx context.Context, ids []model.UserID) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, copyUser(user))
		}
	}
	return users, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, copyUser(s.users[id]))
	}
	return users, nil
}

func (s *Storage) AddUserAttempts(ctx context.Context, id model.UserID, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.AttemptsTotal += n
	return nil
}

// Team operations

func (s *Storage) CreateTeam(ctx context.Context, team *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.teamNameIndex[team.Name]; taken {
		return model.ErrTeamNameTaken
	}

	s.teams[team.ID] = copyTeam(team)
	s.teamNameIndex[team.Name] = team.ID
	s.teamOrder = append(s.teamOrder, team.ID)
	return nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return copyTeam(team), nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams := make([]*model.Team, 0, len(s.teamOrder))
	for _, id := range s.teamOrder {
		teams = append(teams, copyTeam(s.teams[id]))
	}
	return teams, nil
}

func (s *Storage) JoinTeam(ctx context.Context, teamID model.TeamID, userID model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[teamID]
	if !ok {
		return model.ErrTeamNotFound
	}
	user, ok := s.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}

	// Leave the previous team in the same critical section so the
	// one-team-per-user invariant holds throughout
	if user.TeamID != "" && user.TeamID != teamID {
		if prev, ok := s.teams[user.TeamID]; ok {
			prev.RemoveMember(userID)
		}
	}

	team.AddMember(userID)
	user.TeamID = teamID
	return nil
}

func (s *Storage) LeaveTeam(ctx context.Context, userID model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	if user.TeamID == "" {
		return model.ErrNotInTeam
	}

	if team, ok := s.teams[user.TeamID]; ok {
		team.RemoveMember(userID)
	}
	user.TeamID = ""
	return nil
}

// Stored records are copied on the way in and out so callers can mutate
// their structs without bypassing Save.

func copyUser(u *model.User) *model.User {
	c := *u
	return &c
}

func copyTeam(t *model.Team) *model.Team {
	c := *t
	c.Members = make([]model.UserID, len(t.Members))
	copy(c.Members, t.Members)
	return &c
}
