package request

// Register is the body for POST /api/v1/register
type Register struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Login is the body for POST /api/v1/login
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateTeam is the body for POST /api/v1/teams
type CreateTeam struct {
	Name string `json:"name"`
}

// JoinTeam is the body for POST /api/v1/teams/join
type JoinTeam struct {
	TeamID string `json:"team_id"`
}
