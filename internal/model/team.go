package model

import "time"

// TeamID uniquely identifies a team
type TeamID string

// Team represents a named group of users
type Team struct {
	ID   TeamID `json:"id"`
	Name string `json:"name"` // unique
	// Score is rendered in team listings but no operation updates it yet
	Score int `json:"score"`
	// Members holds user references with set semantics (no duplicates).
	// Invariant: every member's User.TeamID points back at this team.
	Members   []UserID  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// HasMember reports whether the user is in the team's member set
func (t *Team) HasMember(id UserID) bool {
	for _, m := range t.Members {
		if m == id {
			return true
		}
	}
	return false
}

// AddMember adds the user to the member set; adding twice is a no-op
func (t *Team) AddMember(id UserID) {
	if t.HasMember(id) {
		return
	}
	t.Members = append(t.Members, id)
}

// RemoveMember removes the user from the member set if present
func (t *Team) RemoveMember(id UserID) {
	for i, m := range t.Members {
		if m == id {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return
		}
	}
}
