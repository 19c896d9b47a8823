package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gobrains/brains/internal/api/apierr"
	"github.com/gobrains/brains/internal/api/middleware"
	"github.com/gobrains/brains/internal/api/request"
	"github.com/gobrains/brains/internal/api/response"
	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/services/team"
)

// TeamHandler handles team-related endpoints
type TeamHandler struct {
	teams *team.Service
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teams *team.Service) *TeamHandler {
	return &TeamHandler{
		teams: teams,
	}
}

// List handles GET /api/v1/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.teams.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	out := make([]response.Team, 0, len(entries))
	for _, e := range entries {
		out = append(out, response.TeamFromEntry(e))
	}
	response.WriteJSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTeam
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.teams.Create(r.Context(), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, response.TeamFromModel(created))
}

// Join handles POST /api/v1/teams/join
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		apierr.WriteError(w, apierr.NewUnauthorizedError())
		return
	}

	var req request.JoinTeam
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.TeamID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("team_id is required"))
		return
	}

	if err := h.teams.Join(r.Context(), user.ID, model.TeamID(req.TeamID)); err != nil {
		apierr.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Leave handles POST /api/v1/teams/leave
func (h *TeamHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		apierr.WriteError(w, apierr.NewUnauthorizedError())
		return
	}

	if err := h.teams.Leave(r.Context(), user.ID); err != nil {
		apierr.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
