package handler

import (
	"log/slog"
	"net/http"

	"github.com/gobrains/brains/internal/services/account"
	"github.com/gobrains/brains/internal/web/view"
)

// LeaderboardHandler handles the public leaderboard
type LeaderboardHandler struct {
	accounts *account.Service
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(accounts *account.Service, renderer *view.Renderer, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		accounts: accounts,
		renderer: renderer,
		logger:   logger,
	}
}

// Leaderboard renders users ordered by ascending total attempts
func (h *LeaderboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.Leaderboard(r.Context())
	if err != nil {
		h.logger.Error("failed to load leaderboard", slog.String("error", err.Error()))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	data := view.UserListPageData{
		PageData: pageData(r, "Leaderboard"),
		Users:    users,
	}
	render(w, r, h.renderer, h.logger, view.PageLeaderboard, data)
}
