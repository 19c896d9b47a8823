package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gobrains/brains/internal/api/handler"
	apimiddleware "github.com/gobrains/brains/internal/api/middleware"
	"github.com/gobrains/brains/internal/middleware"
	"github.com/gobrains/brains/internal/services/account"
	"github.com/gobrains/brains/internal/services/team"
	"github.com/gobrains/brains/internal/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	SessionManager *session.Manager
	AccountService *account.Service
	TeamService    *team.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	accountHandler := handler.NewAccountHandler(cfg.AccountService, cfg.SessionManager)
	teamHandler := handler.NewTeamHandler(cfg.TeamService)

	authMiddleware := apimiddleware.Auth(cfg.SessionManager, cfg.AccountService)
	requireUser := apimiddleware.RequireUser()
	requireAdmin := apimiddleware.RequireAdmin()

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(authMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Account routes (no auth required for registering/logging in)
	api.HandleFunc("/register", accountHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", accountHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", accountHandler.Leaderboard).Methods(http.MethodGet)

	// Protected account routes
	me := api.PathPrefix("/me").Subrouter()
	me.Use(requireUser)
	me.HandleFunc("", accountHandler.Me).Methods(http.MethodGet)

	// Admin routes
	users := api.PathPrefix("/users").Subrouter()
	users.Use(requireAdmin)
	users.HandleFunc("", accountHandler.Users).Methods(http.MethodGet)

	// Team routes
	api.HandleFunc("/teams", teamHandler.List).Methods(http.MethodGet)

	teams := api.PathPrefix("/teams").Subrouter()
	teams.Use(requireUser)
	teams.HandleFunc("", teamHandler.Create).Methods(http.MethodPost)
	teams.HandleFunc("/join", teamHandler.Join).Methods(http.MethodPost)
	teams.HandleFunc("/leave", teamHandler.Leave).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
