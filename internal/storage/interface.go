package storage

import (
	"context"

	"github.com/gobrains/brains/internal/model"
)

// Storage defines the interface for account data persistence.
//
// Uniqueness of emails, usernames and team names is enforced here, not by
// callers: service-level existence checks are a fast path for friendlier
// messages, but the Create* methods are the authoritative guard and return
// the corresponding conflict error when two writers race.
//
// Multi-record mutations (team join/leave, attempt accumulation) are atomic
// within a single call so the user.TeamID / team.Members invariant cannot be
// observed half-applied.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUsers(ctx context.Context, ids []model.UserID) ([]*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	// AddUserAttempts atomically adds n to the user's AttemptsTotal
	AddUserAttempts(ctx context.Context, id model.UserID, n int) error

	// Team operations
	CreateTeam(ctx context.Context, team *model.Team) error
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	ListTeams(ctx context.Context) ([]*model.Team, error)

	// JoinTeam adds the user to the team's member set and points the user's
	// TeamID at the team, atomically. If the user already belongs to another
	// team, that membership is removed in the same transaction. Joining the
	// same team twice is a no-op.
	JoinTeam(ctx context.Context, teamID model.TeamID, userID model.UserID) error

	// LeaveTeam removes the user from their current team's member set and
	// clears the user's TeamID, atomically. Returns model.ErrNotInTeam if
	// the user has no team.
	LeaveTeam(ctx context.Context, userID model.UserID) error
}
