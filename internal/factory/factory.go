package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/gobrains/brains/internal/dependencies/clock"
	"github.com/gobrains/brains/internal/dependencies/random"
	"github.com/gobrains/brains/internal/services/account"
	"github.com/gobrains/brains/internal/services/game"
	"github.com/gobrains/brains/internal/services/team"
	"github.com/gobrains/brains/internal/session"
	sessionmemory "github.com/gobrains/brains/internal/session/memory"
	sessionredis "github.com/gobrains/brains/internal/session/redis"
	"github.com/gobrains/brains/internal/storage"
	"github.com/gobrains/brains/internal/storage/memory"
	redisstorage "github.com/gobrains/brains/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	SessionManager *session.Manager
	GameService    *game.Service
	AccountService *account.Service
	TeamService    *team.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SessionConfig holds session settings (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
	// AdminEmail and AdminPassword bootstrap an admin account on startup (optional)
	AdminEmail    string
	AdminPassword string
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage and session store based on type
	var store storage.Storage
	var sessionStore session.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	clk := clock.New()

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
		sessionStore = sessionmemory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		sessionStore = sessionredis.New(redisStore.Client(), clk)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	rnd := random.New()

	sessionCfg := cfg.SessionConfig
	if sessionCfg.TTL == 0 {
		sessionCfg = session.DefaultConfig()
	}

	app := newWithDependencies(store, sessionStore, clk, rnd, sessionCfg, logger)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := app.AccountService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, sessionStore session.Store, clk clock.Clock, rnd random.Random, sessionCfg session.Config, logger *slog.Logger) *App {
	sessionManager := session.NewManager(sessionStore, clk, sessionCfg)
	gameService := game.New(store, rnd, logger)
	accountService := account.New(store, clk, logger)
	teamService := team.New(store, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		SessionManager: sessionManager,
		GameService:    gameService,
		AccountService: accountService,
		TeamService:    teamService,
	}
}
