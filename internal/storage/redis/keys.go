package redis

import (
	"fmt"

	"github.com/auracount/auracount/internal/model"
)

// Key prefix for all aura data
const keyPrefix = "aura"

// playerKey returns the Redis key for a Player document
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// actionsKey returns the Redis key for the LIST of action documents,
// newest first
func actionsKey() string {
	return fmt.Sprintf("%s:actions", keyPrefix)
}

// sessionKey returns the Redis key for a Session document
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionsIndexKey returns the Redis key for the SET of session keys
func sessionsIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}

// sessionCodeIndexKey returns the Redis key for the code -> session_id index
func sessionCodeIndexKey(code model.SessionCode) string {
	return fmt.Sprintf("%s:idx:session_code:%s", keyPrefix, code)
}
