package model

// Secret number bounds. The secret is drawn from [SecretMin, SecretMax];
// guesses are accepted in [GuessMin, GuessMax].
const (
	SecretMin = 1
	SecretMax = 100
	GuessMin  = 0
	GuessMax  = 100
)

// GameState is the per-session record of the current game.
// A zero SecretNumber means no game has been started for the session yet.
type GameState struct {
	SecretNumber int `json:"secret_number"`
	// Attempts is incremented exactly once per evaluated guess,
	// including guesses that fail to parse or fall out of range.
	Attempts int `json:"attempts"`
}

// Started reports whether a secret has been drawn for this session
func (g *GameState) Started() bool {
	return g.SecretNumber >= SecretMin && g.SecretNumber <= SecretMax
}
