package game

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gobrains/brains/internal/dependencies/random"
	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/session"
	"github.com/gobrains/brains/internal/storage"
)

// Outcome classifies the result of evaluating a guess
type Outcome string

const (
	OutcomeNotANumber Outcome = "not_a_number"
	OutcomeOutOfRange Outcome = "out_of_range"
	OutcomeTooLow     Outcome = "too_low"
	OutcomeTooHigh    Outcome = "too_high"
	OutcomeCorrect    Outcome = "correct"
)

// Result is the classified outcome of one evaluated guess
type Result struct {
	Outcome Outcome
	// Guess is the parsed value; zero when the input did not parse
	Guess int
	// Attempts is the attempt count charged to the game after this guess.
	// For a win it is the number of attempts the win took, captured before
	// the session counter resets.
	Attempts int
	Win      bool
}

// Service drives the per-session game state machine
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
}

// New creates a new game service
func New(store storage.Storage, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		random:  rnd,
		logger:  logger,
	}
}

// Initialize draws a secret for the session if it has none yet.
// Idempotent: an already-started game keeps its secret and attempt count.
// Returns true if a new secret was drawn.
func (s *Service) Initialize(sess *session.Session) bool {
	if sess.Game.Started() {
		return false
	}
	sess.Game = model.GameState{SecretNumber: s.drawSecret()}
	return true
}

// Reset unconditionally redraws the secret and zeroes the attempt counter
func (s *Service) Reset(sess *session.Session) {
	sess.Game = model.GameState{SecretNumber: s.drawSecret()}
}

// EvaluateGuess classifies a raw guess against the session's secret.
//
// The attempt counter increments before anything else, so unparseable and
// out-of-range guesses cost an attempt too. On a correct guess with an
// authenticated session, the attempts the win took are added to the user's
// running total; a store failure there is logged and swallowed so the win
// still renders. The secret survives a win, only Reset draws a new one.
func (s *Service) EvaluateGuess(ctx context.Context, sess *session.Session, input string) Result {
	s.Initialize(sess)
	sess.Game.Attempts++

	guess, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return Result{Outcome: OutcomeNotANumber, Attempts: sess.Game.Attempts}
	}

	if guess < model.GuessMin || guess > model.GuessMax {
		return Result{Outcome: OutcomeOutOfRange, Guess: guess, Attempts: sess.Game.Attempts}
	}

	switch {
	case guess < sess.Game.SecretNumber:
		return Result{Outcome: OutcomeTooLow, Guess: guess, Attempts: sess.Game.Attempts}
	case guess > sess.Game.SecretNumber:
		return Result{Outcome: OutcomeTooHigh, Guess: guess, Attempts: sess.Game.Attempts}
	default:
		attempts := sess.Game.Attempts
		s.recordWin(ctx, sess, attempts)
		sess.Game.Attempts = 0
		return Result{Outcome: OutcomeCorrect, Guess: guess, Attempts: attempts, Win: true}
	}
}

// recordWin accumulates a won game's attempts onto the authenticated user.
// Best-effort: failures must not block the win from rendering.
func (s *Service) recordWin(ctx context.Context, sess *session.Session, attempts int) {
	if !sess.Authenticated() {
		return
	}

	if err := s.storage.AddUserAttempts(ctx, sess.UserID, attempts); err != nil {
		s.logger.Error("failed to record won-game attempts",
			slog.String("user_id", string(sess.UserID)),
			slog.Int("attempts", attempts),
			slog.String("error", err.Error()),
		)
		return
	}

	s.logger.Info("recorded won-game attempts",
		slog.String("user_id", string(sess.UserID)),
		slog.Int("attempts", attempts),
	)
}

func (s *Service) drawSecret() int {
	return s.random.Intn(model.SecretMax-model.SecretMin+1) + model.SecretMin
}
