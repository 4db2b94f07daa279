package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is a tracked participant with a running aura score
type Player struct {
	ID           PlayerID  `json:"id"`
	Name         string    `json:"name"`
	Aura         int       `json:"aura"`
	CreatedAt    time.Time `json:"createdAt"`
	ProfileImage string    `json:"profileImage,omitempty"` // data URI or URL
	Bio          string    `json:"bio,omitempty"`
}

// PlayerUpdate holds the optional fields of a partial player update.
// Nil fields are left unchanged.
type PlayerUpdate struct {
	Name         *string `json:"name,omitempty"`
	Aura         *int    `json:"aura,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	Bio          *string `json:"bio,omitempty"`
}

// Apply merges the set fields into the player
func (u PlayerUpdate) Apply(p *Player) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Aura != nil {
		p.Aura = *u.Aura
	}
	if u.ProfileImage != nil {
		p.ProfileImage = *u.ProfileImage
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
}
