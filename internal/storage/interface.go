package storage

import (
	"context"

	"github.com/auracount/auracount/internal/model"
)

// Store defines the interface to the remote row store. It mirrors the
// three hosted tables (players, aura_actions, game_sessions); the schema
// itself is owned by the hosting side.
type Store interface {
	// Ping probes reachability of the remote store
	Ping(ctx context.Context) error

	// LoadSnapshot returns all players (oldest first) and the most recent
	// actions (newest first, capped at model.MaxActions)
	LoadSnapshot(ctx context.Context) (*model.Snapshot, error)

	// Player operations
	InsertPlayer(ctx context.Context, player *model.Player) error
	UpdatePlayer(ctx context.Context, player *model.Player) error
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Action operations
	InsertAction(ctx context.Context, action *model.Action) error
	// DeletePlayerActions removes all actions referencing the player
	DeletePlayerActions(ctx context.Context, playerID model.PlayerID) error

	// ResetGame deletes all players and actions
	ResetGame(ctx context.Context) error

	// Session operations. Only the session row (id, code, name, timestamps)
	// is stored remotely; the embedded snapshot lives on the device.
	InsertSession(ctx context.Context, session *model.Session) error
	UpdateSession(ctx context.Context, session *model.Session) error
	DeleteSession(ctx context.Context, id model.SessionID) error
	GetSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error)
}
