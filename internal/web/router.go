package web

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gobrains/brains/internal/services/account"
	"github.com/gobrains/brains/internal/services/game"
	"github.com/gobrains/brains/internal/services/team"
	"github.com/gobrains/brains/internal/session"
	"github.com/gobrains/brains/internal/web/handler"
	"github.com/gobrains/brains/internal/web/middleware"
	"github.com/gobrains/brains/internal/web/view"
)

//go:embed static
var staticFS embed.FS

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	SessionManager *session.Manager
	GameService    *game.Service
	AccountService *account.Service
	TeamService    *team.Service
	Renderer       *view.Renderer
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Global middleware: every page runs with a session, flash and the
	// resolved principal
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Session(cfg.SessionManager))
	r.Use(middleware.Flash())
	r.Use(middleware.Principal(cfg.AccountService))

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameService, cfg.SessionManager, cfg.Renderer, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AccountService, cfg.SessionManager, cfg.Renderer, cfg.Logger)
	adminHandler := handler.NewAdminHandler(cfg.AccountService, cfg.Renderer, cfg.Logger)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.AccountService, cfg.Renderer, cfg.Logger)
	teamHandler := handler.NewTeamHandler(cfg.TeamService, cfg.Renderer, cfg.Logger)

	// Static files
	r.PathPrefix("/static/").Handler(http.FileServer(http.FS(staticFS)))

	// Game
	r.HandleFunc("/", gameHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/guess", gameHandler.Guess).Methods(http.MethodPost)
	r.HandleFunc("/reset", gameHandler.Reset).Methods(http.MethodPost)

	// Accounts
	r.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet)
	r.HandleFunc("/inscription", authHandler.RegisterPage).Methods(http.MethodGet)
	r.HandleFunc("/inscription", authHandler.Register).Methods(http.MethodPost)

	// Public listings
	r.HandleFunc("/classement", leaderboardHandler.Leaderboard).Methods(http.MethodGet)
	r.HandleFunc("/teams", teamHandler.List).Methods(http.MethodGet)

	// Team actions require a principal
	teamActions := r.NewRoute().Subrouter()
	teamActions.Use(middleware.RequireUser())
	teamActions.HandleFunc("/teams", teamHandler.Create).Methods(http.MethodPost)
	teamActions.HandleFunc("/teams/join", teamHandler.Join).Methods(http.MethodPost)
	teamActions.HandleFunc("/teams/leave", teamHandler.Leave).Methods(http.MethodPost)

	// Admin routes reject non-admins before the handler body runs
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin())
	admin.HandleFunc("", adminHandler.Home).Methods(http.MethodGet)
	admin.HandleFunc("/users", adminHandler.Users).Methods(http.MethodGet)

	return r
}
