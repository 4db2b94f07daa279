package request

// CreatePlayerRequest is the request body for creating a player
type CreatePlayerRequest struct {
	Name string `json:"name"`
}

// UpdatePlayerRequest is the request body for partially updating a player.
// Absent fields are left untouched.
type UpdatePlayerRequest struct {
	Name         *string `json:"name,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	Bio          *string `json:"bio,omitempty"`
}

// ChangeAuraRequest is the request body for applying an aura delta
type ChangeAuraRequest struct {
	Change int    `json:"change"`
	Reason string `json:"reason,omitempty"`
}

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	Name string `json:"name"`
}

// SetCurrentSessionRequest is the request body for switching sessions
type SetCurrentSessionRequest struct {
	ID string `json:"id"`
}

// CleanSessionsRequest is the request body for pruning stale sessions
type CleanSessionsRequest struct {
	MaxAgeDays int `json:"max_age_days"`
}
