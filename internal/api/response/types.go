package response

import (
	"time"

	"github.com/auracount/auracount/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Aura         int       `json:"aura"`
	CreatedAt    time.Time `json:"created_at"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Bio          string    `json:"bio,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:           string(p.ID),
		Name:         p.Name,
		Aura:         p.Aura,
		CreatedAt:    p.CreatedAt,
		ProfileImage: p.ProfileImage,
		Bio:          p.Bio,
	}
}

// PlayersFromModel converts a player slice
func PlayersFromModel(players []model.Player) []Player {
	out := make([]Player, len(players))
	for i := range players {
		out[i] = PlayerFromModel(&players[i])
	}
	return out
}

// Action represents one aura change in API responses
type Action struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Change     int       `json:"change"`
	Timestamp  time.Time `json:"timestamp"`
	Reason     string    `json:"reason,omitempty"`
}

// ActionFromModel converts a model.Action
func ActionFromModel(a *model.Action) Action {
	return Action{
		ID:         string(a.ID),
		PlayerID:   string(a.PlayerID),
		PlayerName: a.PlayerName,
		Change:     a.Change,
		Timestamp:  a.Timestamp,
		Reason:     a.Reason,
	}
}

// ActionsFromModel converts an action slice
func ActionsFromModel(actions []model.Action) []Action {
	out := make([]Action, len(actions))
	for i := range actions {
		out[i] = ActionFromModel(&actions[i])
	}
	return out
}

// Session represents a session in API responses. The embedded snapshot is
// deliberately not exposed; clients read scores through the player routes.
type Session struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	Current      bool      `json:"current"`
}

// SessionFromModel converts a model.Session, marking whether it is current
func SessionFromModel(s *model.Session, current bool) Session {
	return Session{
		ID:           string(s.ID),
		Code:         string(s.Code),
		Name:         s.Name,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
		Current:      current,
	}
}

// SessionsFromModel converts a session slice
func SessionsFromModel(sessions []*model.Session, currentID model.SessionID) []Session {
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = SessionFromModel(s, currentID != "" && s.ID == currentID)
	}
	return out
}

// HealthResponse reports server liveness and remote storage state
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// CleanResponse reports how many sessions a clean pass removed
type CleanResponse struct {
	Removed int `json:"removed"`
}

// ImportResponse reports the outcome of a data import
type ImportResponse struct {
	Imported bool `json:"imported"`
}
