package response

import (
	"time"

	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/services/team"
)

// Health is the body for GET /api/v1/health
type Health struct {
	Status string `json:"status"`
}

// User is the public view of a user account.
// The password hash never appears in API responses.
type User struct {
	ID            model.UserID `json:"id"`
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	Role          model.Role   `json:"role"`
	AttemptsTotal int          `json:"attempts_total"`
	TeamID        model.TeamID `json:"team_id,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// UserFromModel converts a model user to its response form
func UserFromModel(u *model.User) User {
	return User{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Role:          u.Role,
		AttemptsTotal: u.AttemptsTotal,
		TeamID:        u.TeamID,
		CreatedAt:     u.CreatedAt,
	}
}

// UsersFromModels converts a slice of model users
func UsersFromModels(users []*model.User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, UserFromModel(u))
	}
	return out
}

// Login is the body for a successful POST /api/v1/login
type Login struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Team is the public view of a team
type Team struct {
	ID        model.TeamID `json:"id"`
	Name      string       `json:"name"`
	Score     int          `json:"score"`
	Members   []User       `json:"members"`
	CreatedAt time.Time    `json:"created_at"`
}

// TeamFromEntry converts a populated team listing entry
func TeamFromEntry(e *team.TeamWithMembers) Team {
	return Team{
		ID:        e.Team.ID,
		Name:      e.Team.Name,
		Score:     e.Team.Score,
		Members:   UsersFromModels(e.Members),
		CreatedAt: e.Team.CreatedAt,
	}
}

// TeamFromModel converts a bare team with no member details
func TeamFromModel(t *model.Team) Team {
	return Team{
		ID:        t.ID,
		Name:      t.Name,
		Score:     t.Score,
		Members:   []User{},
		CreatedAt: t.CreatedAt,
	}
}
