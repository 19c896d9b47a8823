package redis

import (
	"fmt"

	"github.com/gobrains/brains/internal/model"
)

// Key prefix for all account data
const keyPrefix = "brains"

// Key generation functions for each entity type

// userKey returns the Redis key for a User document
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// usersIndexKey returns the Redis key for the LIST of all user ids.
// A list rather than a set, so listings keep insertion order.
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}

// teamKey returns the Redis key for a Team document
func teamKey(id model.TeamID) string {
	return fmt.Sprintf("%s:team:%s", keyPrefix, id)
}

// teamNameIndexKey returns the Redis key for the team name -> team_id index
func teamNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:teamname:%s", keyPrefix, name)
}

// teamsIndexKey returns the Redis key for the LIST of all team ids
func teamsIndexKey() string {
	return fmt.Sprintf("%s:idx:teams", keyPrefix)
}
