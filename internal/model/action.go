package model

import "time"

// ActionID uniquely identifies an action log entry
type ActionID string

// MaxActions caps the action log; oldest entries are evicted first
const MaxActions = 1000

// Action is an immutable log entry recording one aura change.
// PlayerName is captured at creation time and deliberately not kept in
// sync with later renames.
type Action struct {
	ID         ActionID  `json:"id"`
	PlayerID   PlayerID  `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Change     int       `json:"change"`
	Timestamp  time.Time `json:"timestamp"`
	Reason     string    `json:"reason,omitempty"`
}
