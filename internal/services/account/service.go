package account

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gobrains/brains/internal/dependencies/clock"
	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/storage"
)

// ErrInvalidCredentials is the single error for every failed login.
// It deliberately does not reveal whether the email is registered.
var ErrInvalidCredentials = errors.New("email or password incorrect")

// bcryptCost is the hashing cost for stored passwords
const bcryptCost = 10

// RegisterInput carries the registration form fields
type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

// Service handles account registration, authentication and listings
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new account service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Register creates a new user account.
//
// Format failures are collected and returned together as ValidationErrors.
// Only when the input is well-formed are uniqueness checks run, email
// first then username; the first conflict found is reported on its own.
// The existence lookups are a fast path for a friendly message — the
// storage layer's constraint is the authoritative guard, and a racing
// insert maps to the same messages.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))

	if errs := validateRegistration(in); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.storage.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, ValidationErrors{{Field: "email", Msg: MsgEmailTaken}}
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.storage.GetUserByUsername(ctx, in.Username); err == nil {
		return nil, ValidationErrors{{Field: "username", Msg: MsgUsernameTaken}}
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, model.ErrEmailTaken):
			return nil, ValidationErrors{{Field: "email", Msg: MsgEmailTaken}}
		case errors.Is(err, model.ErrUsernameTaken):
			return nil, ValidationErrors{{Field: "username", Msg: MsgUsernameTaken}}
		default:
			return nil, err
		}
	}

	s.logger.Info("user registered",
		slog.String("user_id", string(user.ID)),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Authenticate verifies an email/password pair. An unknown email and a
// wrong password both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.storage.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser loads a user by id
func (s *Service) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// ListUsers returns every user in store order. Authorization for the
// admin listing happens in middleware before this runs.
func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.storage.ListUsers(ctx)
}

// Leaderboard returns every user ordered by ascending total attempts,
// ties keeping store order
func (s *Service) Leaderboard(ctx context.Context) ([]*model.User, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].AttemptsTotal < users[j].AttemptsTotal
	})
	return users, nil
}

// EnsureAdmin creates the admin account if it does not exist, or promotes
// an existing account with that email. Used at startup so a deployment
// always has a way into the admin surfaces.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		if user.Role == model.RoleAdmin {
			return nil
		}
		user.Role = model.RoleAdmin
		return s.storage.SaveUser(ctx, user)
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     "admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("admin account created", slog.String("email", email))
	return nil
}
