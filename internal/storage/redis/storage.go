package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/storage"
)

// errStaleRead signals that a record changed between the plain read that
// chose the watch set and the transactional re-read; the caller retries.
var errStaleRead = errors.New("stale read, retry transaction")

// Storage is a Redis-backed implementation of the storage interface.
// Documents are stored as JSON values; uniqueness indexes and the
// user/team listings are separate keys kept in sync inside WATCH-based
// optimistic transactions, so concurrent writers cannot leave the
// user.TeamID / team.Members relation half-applied.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Client exposes the underlying Redis client so other components can
// share the connection pool
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// watch runs txf under WATCH on the given keys, retrying when the
// transaction is aborted by a concurrent write
func (s *Storage) watch(ctx context.Context, txf func(tx *redis.Tx) error, keys ...string) error {
	retries := s.cfg.TxRetries
	if retries <= 0 {
		retries = 1
	}
	for i := 0; i < retries; i++ {
		err := s.client.Watch(ctx, txf, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return redis.TxFailedErr
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	emailIdx := emailIndexKey(user.Email)
	usernameIdx := usernameIndexKey(user.Username)

	txf := func(tx *redis.Tx) error {
		// The index keys are the authoritative uniqueness guard
		exists, err := tx.Exists(ctx, emailIdx).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return model.ErrEmailTaken
		}
		exists, err = tx.Exists(ctx, usernameIdx).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return model.ErrUsernameTaken
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, userKey(user.ID), data, 0)
			pipe.Set(ctx, emailIdx, string(user.ID), 0)
			pipe.Set(ctx, usernameIdx, string(user.ID), 0)
			pipe.RPush(ctx, usersIndexKey(), string(user.ID))
			return nil
		})
		return err
	}

	return s.watch(ctx, txf, emailIdx, usernameIdx)
}

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(user.ID), data, 0).Err()
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUserViaIndex(ctx, emailIndexKey(email))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUserViaIndex(ctx, usernameIndexKey(username))
}

func (s *Storage) getUserViaIndex(ctx context.Context, indexKey string) (*model.User, error) {
	id, err := s.client.Get(ctx, indexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(id))
}

func (s *Storage) GetUsers(ctx context.Context, ids []model.UserID) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = userKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Referenced user no longer present
		}
		var user model.User
		if err := json.Unmarshal([]byte(val.(string)), &user); err != nil {
			continue // Skip invalid data
		}
		users = append(users, &user)
	}
	return users, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	rawIDs, err := s.client.LRange(ctx, usersIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]model.UserID, len(rawIDs))
	for i, raw := range rawIDs {
		ids[i] = model.UserID(raw)
	}
	return s.GetUsers(ctx, ids)
}

func (s *Storage) AddUserAttempts(ctx context.Context, id model.UserID, n int) error {
	key := userKey(id)

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrUserNotFound
			}
			return err
		}

		var user model.User
		if err := json.Unmarshal(data, &user); err != nil {
			return err
		}
		user.AttemptsTotal += n

		updated, err := json.Marshal(&user)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}

	return s.watch(ctx, txf, key)
}

// Team operations

func (s *Storage) CreateTeam(ctx context.Context, team *model.Team) error {
	data, err := json.Marshal(team)
	if err != nil {
		return err
	}

	nameIdx := teamNameIndexKey(team.Name)

	txf := func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, nameIdx).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return model.ErrTeamNameTaken
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, teamKey(team.ID), data, 0)
			pipe.Set(ctx, nameIdx, string(team.ID), 0)
			pipe.RPush(ctx, teamsIndexKey(), string(team.ID))
			return nil
		})
		return err
	}

	return s.watch(ctx, txf, nameIdx)
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	data, err := s.client.Get(ctx, teamKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}

	var team model.Team
	if err := json.Unmarshal(data, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	rawIDs, err := s.client.LRange(ctx, teamsIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	teams := make([]*model.Team, 0, len(rawIDs))
	for _, raw := range rawIDs {
		team, err := s.GetTeam(ctx, model.TeamID(raw))
		if err != nil {
			if errors.Is(err, model.ErrTeamNotFound) {
				continue
			}
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (s *Storage) JoinTeam(ctx context.Context, teamID model.TeamID, userID model.UserID) error {
	retries := s.cfg.TxRetries
	if retries <= 0 {
		retries = 1
	}

	for i := 0; i < retries; i++ {
		// A plain read picks the watch set; the transactional re-read
		// below detects if the user's team changed in the meantime
		user, err := s.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		prevTeamID := user.TeamID

		watchKeys := []string{userKey(userID), teamKey(teamID)}
		if prevTeamID != "" && prevTeamID != teamID {
			watchKeys = append(watchKeys, teamKey(prevTeamID))
		}

		txf := func(tx *redis.Tx) error {
			user, err := s.getUserTx(ctx, tx, userID)
			if err != nil {
				return err
			}
			if user.TeamID != prevTeamID {
				return errStaleRead
			}

			team, err := s.getTeamTx(ctx, tx, teamID)
			if err != nil {
				return err
			}

			var prevTeam *model.Team
			if prevTeamID != "" && prevTeamID != teamID {
				prevTeam, err = s.getTeamTx(ctx, tx, prevTeamID)
				if err != nil && !errors.Is(err, model.ErrTeamNotFound) {
					return err
				}
			}

			if prevTeam != nil {
				prevTeam.RemoveMember(userID)
			}
			team.AddMember(userID)
			user.TeamID = teamID

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if err := pipeSetJSON(ctx, pipe, userKey(userID), user); err != nil {
					return err
				}
				if err := pipeSetJSON(ctx, pipe, teamKey(teamID), team); err != nil {
					return err
				}
				if prevTeam != nil {
					if err := pipeSetJSON(ctx, pipe, teamKey(prevTeamID), prevTeam); err != nil {
						return err
					}
				}
				return nil
			})
			return err
		}

		err = s.client.Watch(ctx, txf, watchKeys...)
		if errors.Is(err, redis.TxFailedErr) || errors.Is(err, errStaleRead) {
			continue
		}
		return err
	}
	return redis.TxFailedErr
}

func (s *Storage) LeaveTeam(ctx context.Context, userID model.UserID) error {
	retries := s.cfg.TxRetries
	if retries <= 0 {
		retries = 1
	}

	for i := 0; i < retries; i++ {
		user, err := s.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if user.TeamID == "" {
			return model.ErrNotInTeam
		}
		prevTeamID := user.TeamID

		txf := func(tx *redis.Tx) error {
			user, err := s.getUserTx(ctx, tx, userID)
			if err != nil {
				return err
			}
			if user.TeamID != prevTeamID {
				return errStaleRead
			}

			team, err := s.getTeamTx(ctx, tx, prevTeamID)
			if err != nil && !errors.Is(err, model.ErrTeamNotFound) {
				return err
			}
			if team != nil {
				team.RemoveMember(userID)
			}
			user.TeamID = ""

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if err := pipeSetJSON(ctx, pipe, userKey(userID), user); err != nil {
					return err
				}
				if team != nil {
					if err := pipeSetJSON(ctx, pipe, teamKey(prevTeamID), team); err != nil {
						return err
					}
				}
				return nil
			})
			return err
		}

		err = s.client.Watch(ctx, txf, userKey(userID), teamKey(prevTeamID))
		if errors.Is(err, redis.TxFailedErr) || errors.Is(err, errStaleRead) {
			continue
		}
		return err
	}
	return redis.TxFailedErr
}

// Transactional read helpers

func (s *Storage) getUserTx(ctx context.Context, tx *redis.Tx, id model.UserID) (*model.User, error) {
	data, err := tx.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) getTeamTx(ctx context.Context, tx *redis.Tx, id model.TeamID) (*model.Team, error) {
	data, err := tx.Get(ctx, teamKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}
	var team model.Team
	if err := json.Unmarshal(data, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func pipeSetJSON(ctx context.Context, pipe redis.Pipeliner, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	pipe.Set(ctx, key, data, 0)
	return nil
}
