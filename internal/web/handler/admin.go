package handler

import (
	"log/slog"
	"net/http"

	"github.com/gobrains/brains/internal/services/account"
	"github.com/gobrains/brains/internal/web/view"
)

// AdminHandler handles the admin-only surfaces. Authorization happens in
// middleware before these run.
type AdminHandler struct {
	accounts *account.Service
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(accounts *account.Service, renderer *view.Renderer, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		accounts: accounts,
		renderer: renderer,
		logger:   logger,
	}
}

// Home redirects to the user listing
func (h *AdminHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// Users renders the full user listing
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", slog.String("error", err.Error()))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	data := view.UserListPageData{
		PageData: pageData(r, "Users"),
		Users:    users,
	}
	render(w, r, h.renderer, h.logger, view.PageUsers, data)
}
