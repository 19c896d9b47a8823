package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case []User:
		o.printUsers(v)
	case LoginResult:
		o.printLoginResult(v)
	case Team:
		o.printTeam(v)
	case []Team:
		o.printTeams(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	AttemptsTotal int    `json:"attempts_total"`
	TeamID        string `json:"team_id,omitempty"`
}

// LoginResult combines user and token
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Team response type
type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Members []User `json:"members"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Role: %s\n", u.Role)
	fmt.Printf("Total attempts: %d\n", u.AttemptsTotal)
	if u.TeamID != "" {
		fmt.Printf("Team: %s\n", u.TeamID)
	}
}

func (o *Output) printUsers(users []User) {
	fmt.Printf("Users (%d):\n", len(users))
	for _, u := range users {
		fmt.Printf("  - %s <%s> - %d attempts\n", u.Username, u.Email, u.AttemptsTotal)
	}
}

func (o *Output) printLoginResult(l LoginResult) {
	o.printUser(l.User)
	fmt.Printf("Token: %s\n", l.Token)
}

func (o *Output) printTeam(t Team) {
	fmt.Printf("Team: %s (%s)\n", t.Name, t.ID)
	fmt.Printf("Score: %d\n", t.Score)
	fmt.Printf("Members (%d):\n", len(t.Members))
	for _, m := range t.Members {
		fmt.Printf("  - %s\n", m.Username)
	}
}

func (o *Output) printTeams(teams []Team) {
	for i, t := range teams {
		if i > 0 {
			fmt.Println()
		}
		o.printTeam(t)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
