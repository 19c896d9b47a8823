package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already used")
	ErrUsernameTaken = errors.New("username already used")

	// Team errors
	ErrTeamNotFound  = errors.New("team not found")
	ErrTeamNameTaken = errors.New("team name already used")
	ErrNotInTeam     = errors.New("user is not in a team")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)
