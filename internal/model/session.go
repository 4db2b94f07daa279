package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// SessionCode is the 4-digit decimal code players use to join a session
type SessionCode string

// Session is a named, code-addressed container holding one independent
// player/action snapshot
type Session struct {
	ID           SessionID   `json:"id"`
	Code         SessionCode `json:"code"`
	Name         string      `json:"name"`
	CreatedAt    time.Time   `json:"createdAt"`
	LastActivity time.Time   `json:"lastActivity"`
	GameState    Snapshot    `json:"gameState"`
}

// DirectoryState is the persisted form of the session directory: the
// session list plus the (possibly unset) current-session pointer
type DirectoryState struct {
	Sessions         []*Session `json:"sessions"`
	CurrentSessionID SessionID  `json:"currentSessionId,omitempty"`
}
