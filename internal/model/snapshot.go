package model

// Snapshot is the (players, actions) pair persisted as a unit and
// embedded inside sessions. Actions are ordered newest-first.
type Snapshot struct {
	Players []Player `json:"players"`
	Actions []Action `json:"actions"`
}

// EmptySnapshot returns a snapshot with empty (non-nil) collections
func EmptySnapshot() Snapshot {
	return Snapshot{
		Players: []Player{},
		Actions: []Action{},
	}
}

// Clone returns a deep-enough copy: the slices are copied so callers can
// mutate the result without affecting the original
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Players: make([]Player, len(s.Players)),
		Actions: make([]Action, len(s.Actions)),
	}
	copy(out.Players, s.Players)
	copy(out.Actions, s.Actions)
	return out
}
