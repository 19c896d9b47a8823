package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/services/team"
	"github.com/gobrains/brains/internal/web/middleware"
	"github.com/gobrains/brains/internal/web/view"
)

// TeamHandler handles team listing and membership actions
type TeamHandler struct {
	teams    *team.Service
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(teams *team.Service, renderer *view.Renderer, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{
		teams:    teams,
		renderer: renderer,
		logger:   logger,
	}
}

// List renders every team with its members resolved
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list teams", slog.String("error", err.Error()))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	entries := make([]view.TeamEntry, len(teams))
	for i, t := range teams {
		entries[i] = view.TeamEntry{
			ID:      t.Team.ID,
			Name:    t.Team.Name,
			Score:   t.Team.Score,
			Members: t.Members,
		}
	}

	data := view.TeamsPageData{
		PageData: pageData(r, "Teams"),
		Teams:    entries,
	}
	render(w, r, h.renderer, h.logger, view.PageTeams, data)
}

// Create makes a new team from the form's name field
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	_, err := h.teams.Create(r.Context(), r.FormValue("name"))
	switch {
	case errors.Is(err, team.ErrNameRequired):
		middleware.SetFlash(w, "error", "Team name is required.")
	case errors.Is(err, model.ErrTeamNameTaken):
		middleware.SetFlash(w, "error", "This team name is already used.")
	case err != nil:
		h.logger.Error("failed to create team", slog.String("error", err.Error()))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}

// Join adds the authenticated user to the requested team
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	user := middleware.GetUser(r.Context())
	teamID := model.TeamID(r.FormValue("teamId"))
	if teamID == "" {
		middleware.SetFlash(w, "error", "No team selected.")
		http.Redirect(w, r, "/teams", http.StatusSeeOther)
		return
	}

	err := h.teams.Join(r.Context(), user.ID, teamID)
	switch {
	case errors.Is(err, model.ErrTeamNotFound):
		middleware.SetFlash(w, "error", "That team no longer exists.")
	case err != nil:
		h.logger.Error("failed to join team", slog.String("error", err.Error()))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}

// Leave removes the authenticated user from their team, if any
func (h *TeamHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := h.teams.Leave(r.Context(), user.ID); err != nil {
		h.logger.Error("failed to leave team", slog.String("error", err.Error()))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}
