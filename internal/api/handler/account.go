package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gobrains/brains/internal/api/apierr"
	"github.com/gobrains/brains/internal/api/middleware"
	"github.com/gobrains/brains/internal/api/request"
	"github.com/gobrains/brains/internal/api/response"
	"github.com/gobrains/brains/internal/services/account"
	"github.com/gobrains/brains/internal/session"
)

// AccountHandler handles account-related endpoints
type AccountHandler struct {
	accounts *account.Service
	sessions *session.Manager
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *account.Service, sessions *session.Manager) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		sessions: sessions,
	}
}

// Register handles POST /api/v1/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.Register
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	user, err := h.accounts.Register(r.Context(), account.RegisterInput{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, response.UserFromModel(user))
}

// Login handles POST /api/v1/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.Login
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	sess, err := h.sessions.Create(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	sess.UserID = user.ID
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, response.Login{
		Token: sess.Token,
		User:  response.UserFromModel(user),
	})
}

// Me handles GET /api/v1/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		apierr.WriteError(w, apierr.NewUnauthorizedError())
		return
	}
	response.WriteJSON(w, http.StatusOK, response.UserFromModel(user))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *AccountHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.Leaderboard(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, response.UsersFromModels(users))
}

// Users handles GET /api/v1/users (admin only)
func (h *AccountHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, response.UsersFromModels(users))
}
