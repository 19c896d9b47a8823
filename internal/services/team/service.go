package team

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/gobrains/brains/internal/dependencies/clock"
	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/storage"
)

// ErrNameRequired is returned when creating a team without a name
var ErrNameRequired = errors.New("team name is required")

// TeamWithMembers is a team with its member references resolved to users
type TeamWithMembers struct {
	Team    *model.Team
	Members []*model.User
}

// Service handles team creation and membership
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new team service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Create makes a new empty team. Name uniqueness is enforced by storage.
func (s *Service) Create(ctx context.Context, name string) (*model.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	team := &model.Team{
		ID:        model.TeamID(uuid.NewString()),
		Name:      name,
		Members:   []model.UserID{},
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.CreateTeam(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Info("team created",
		slog.String("team_id", string(team.ID)),
		slog.String("name", team.Name),
	)
	return team, nil
}

// Join adds the user to the team. Both sides of the relation are written
// in one storage transaction; joining the same team twice is a no-op, and
// joining a different team moves the user.
func (s *Service) Join(ctx context.Context, userID model.UserID, teamID model.TeamID) error {
	return s.storage.JoinTeam(ctx, teamID, userID)
}

// Leave removes the user from their current team. A user without a team
// is a no-op, per the membership contract.
func (s *Service) Leave(ctx context.Context, userID model.UserID) error {
	err := s.storage.LeaveTeam(ctx, userID)
	if errors.Is(err, model.ErrNotInTeam) {
		return nil
	}
	return err
}

// List returns every team with its member references resolved
func (s *Service) List(ctx context.Context) ([]*TeamWithMembers, error) {
	teams, err := s.storage.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*TeamWithMembers, 0, len(teams))
	for _, t := range teams {
		members, err := s.storage.GetUsers(ctx, t.Members)
		if err != nil {
			return nil, err
		}
		result = append(result, &TeamWithMembers{Team: t, Members: members})
	}
	return result, nil
}
