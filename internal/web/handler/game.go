package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gobrains/brains/internal/services/game"
	"github.com/gobrains/brains/internal/session"
	"github.com/gobrains/brains/internal/web/middleware"
	"github.com/gobrains/brains/internal/web/view"
)

// Messages rendered on the guess page
const (
	msgHome       = "What number is hiding behind the mystery card?"
	msgNotANumber = "Error! Please enter a valid number!"
	msgOutOfRange = "Error! Please enter a number between 0 and 100!"
	msgTooLow     = "Too low!"
	msgTooHigh    = "Too high!"
)

// GameHandler handles the guess page and game actions
type GameHandler struct {
	games    *game.Service
	sessions *session.Manager
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(games *game.Service, sessions *session.Manager, renderer *view.Renderer, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		games:    games,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// Home renders the guess page, starting a game for the session if needed
func (h *GameHandler) Home(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	if h.games.Initialize(sess) {
		if err := h.sessions.Save(r.Context(), sess); err != nil {
			h.logger.Error("failed to save session", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	data := view.GamePageData{
		PageData:     pageData(r, "Play"),
		Message:      msgHome,
		Win:          false,
		Attempts:     sess.Game.Attempts,
		SecretNumber: sess.Game.SecretNumber,
	}
	render(w, r, h.renderer, h.logger, view.PageGame, data)
}

// Guess evaluates a submitted guess and renders the updated state
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sess := middleware.GetSession(r.Context())
	result := h.games.EvaluateGuess(r.Context(), sess, r.FormValue("number"))

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to save session", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := view.GamePageData{
		PageData:     pageData(r, "Play"),
		Message:      guessMessage(result),
		Win:          result.Win,
		Attempts:     result.Attempts,
		SecretNumber: sess.Game.SecretNumber,
	}
	render(w, r, h.renderer, h.logger, view.PageGame, data)
}

// Reset redraws the secret, zeroes the counter and redirects home
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	h.games.Reset(sess)

	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to save session", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func guessMessage(result game.Result) string {
	switch result.Outcome {
	case game.OutcomeNotANumber:
		return msgNotANumber
	case game.OutcomeOutOfRange:
		return msgOutOfRange
	case game.OutcomeTooLow:
		return msgTooLow
	case game.OutcomeTooHigh:
		return msgTooHigh
	default:
		return fmt.Sprintf("Well done! You found the number in %d attempts!", result.Attempts)
	}
}
