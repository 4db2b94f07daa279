package score

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/auracount/auracount/internal/dependencies/clock"
	"github.com/auracount/auracount/internal/model"
	"github.com/auracount/auracount/internal/storage"
	"github.com/auracount/auracount/internal/storage/local"
)

// Store owns the in-memory player list and the append-only action log.
// Every mutation is written to device storage synchronously and mirrored
// to the remote store best-effort; remote failures flip the shared health
// state to offline and are never surfaced to the caller.
type Store struct {
	mu    sync.Mutex
	state model.Snapshot

	remote storage.Store
	local  *local.Store
	health *storage.Health
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a score store. Call Load before use.
func New(remote storage.Store, localStore *local.Store, health *storage.Health, clk clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		state:  model.EmptySnapshot(),
		remote: remote,
		local:  localStore,
		health: health,
		clock:  clk,
		logger: logger,
	}
}

// Load initializes state: probe the remote once, pull the full snapshot
// from it when reachable (mirroring to device storage), otherwise fall
// back to the last local snapshot.
func (s *Store) Load(ctx context.Context) {
	if s.health.Probe(ctx) {
		snap, err := s.remote.LoadSnapshot(ctx)
		if err == nil {
			s.mu.Lock()
			s.state = *snap
			s.persistLocked()
			s.mu.Unlock()
			return
		}
		s.logger.Warn("remote snapshot load failed, falling back to device storage",
			slog.String("error", err.Error()))
		s.health.MarkOffline()
	}

	snap := s.local.LoadSnapshot()
	s.mu.Lock()
	s.state = *snap
	s.mu.Unlock()
}

// Refresh re-probes the remote and, when reachable, replaces state with
// the remote snapshot
func (s *Store) Refresh(ctx context.Context) {
	if !s.health.Probe(ctx) {
		return
	}
	snap, err := s.remote.LoadSnapshot(ctx)
	if err != nil {
		s.logger.Warn("remote refresh failed", slog.String("error", err.Error()))
		s.health.MarkOffline()
		return
	}
	s.mu.Lock()
	s.state = *snap
	s.persistLocked()
	s.mu.Unlock()
}

// Connected reports whether the remote store is currently online
func (s *Store) Connected() bool {
	return s.health.Online()
}

// persistLocked writes the full snapshot to device storage. Must be called
// with the mutex held. Failures are logged only.
func (s *Store) persistLocked() {
	if err := s.local.SaveSnapshot(&s.state); err != nil {
		s.logger.Warn("failed to save snapshot to device storage", slog.String("error", err.Error()))
	}
}

// sync issues one best-effort remote call after the local mutation has
// committed. Failures are logged, flip the health state to offline, and
// never fail the operation.
func (s *Store) sync(ctx context.Context, op string, fn func(context.Context) error) {
	if !s.health.Online() {
		return
	}
	if err := fn(ctx); err != nil {
		s.logger.Warn("remote sync failed",
			slog.String("op", op),
			slog.String("error", err.Error()))
		s.health.MarkOffline()
	}
}

// AddPlayer creates a player with aura 0 from the trimmed name. Name
// uniqueness is the caller's responsibility; the store does not re-check.
func (s *Store) AddPlayer(ctx context.Context, name string) model.Player {
	player := model.Player{
		ID:        model.PlayerID(uuid.NewString()),
		Name:      strings.TrimSpace(name),
		Aura:      0,
		CreatedAt: s.clock.Now(),
	}

	s.mu.Lock()
	s.state.Players = append(s.state.Players, player)
	s.persistLocked()
	s.mu.Unlock()

	s.sync(ctx, "insert player", func(ctx context.Context) error {
		return s.remote.InsertPlayer(ctx, &player)
	})

	return player
}

// UpdatePlayer merges the given fields into an existing player. Returns
// nil if the id is unknown.
func (s *Store) UpdatePlayer(ctx context.Context, id model.PlayerID, update model.PlayerUpdate) *model.Player {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	update.Apply(&s.state.Players[idx])
	updated := s.state.Players[idx]
	s.persistLocked()
	s.mu.Unlock()

	s.sync(ctx, "update player", func(ctx context.Context) error {
		return s.remote.UpdatePlayer(ctx, &updated)
	})

	return &updated
}

// RemovePlayer deletes the player and every action referencing it.
// Returns whether a player was actually removed.
func (s *Store) RemovePlayer(ctx context.Context, id model.PlayerID) bool {
	s.mu.Lock()
	if s.indexOfLocked(id) < 0 {
		s.mu.Unlock()
		return false
	}

	players := s.state.Players[:0]
	for _, p := range s.state.Players {
		if p.ID != id {
			players = append(players, p)
		}
	}
	s.state.Players = players

	actions := s.state.Actions[:0]
	for _, a := range s.state.Actions {
		if a.PlayerID != id {
			actions = append(actions, a)
		}
	}
	s.state.Actions = actions

	s.persistLocked()
	s.mu.Unlock()

	s.sync(ctx, "delete player", func(ctx context.Context) error {
		return s.remote.DeletePlayer(ctx, id)
	})
	s.sync(ctx, "delete player actions", func(ctx context.Context) error {
		return s.remote.DeletePlayerActions(ctx, id)
	})

	return true
}

// ChangeAura applies a delta to a player's aura and prepends an action to
// the log, capturing the player's name at call time. This is the only
// mutation path for scores. Returns false if the player is unknown.
func (s *Store) ChangeAura(ctx context.Context, playerID model.PlayerID, change int, reason string) bool {
	s.mu.Lock()
	idx := s.indexOfLocked(playerID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	s.state.Players[idx].Aura += change
	updated := s.state.Players[idx]

	action := model.Action{
		ID:         model.ActionID(uuid.NewString()),
		PlayerID:   playerID,
		PlayerName: updated.Name,
		Change:     change,
		Timestamp:  s.clock.Now(),
		Reason:     reason,
	}
	s.state.Actions = append([]model.Action{action}, s.state.Actions...)
	if len(s.state.Actions) > model.MaxActions {
		s.state.Actions = s.state.Actions[:model.MaxActions]
	}

	s.persistLocked()
	s.mu.Unlock()

	s.sync(ctx, "update player", func(ctx context.Context) error {
		return s.remote.UpdatePlayer(ctx, &updated)
	})
	s.sync(ctx, "insert action", func(ctx context.Context) error {
		return s.remote.InsertAction(ctx, &action)
	})

	return true
}

// Player returns a copy of the player with the given id, or nil
func (s *Store) Player(id model.PlayerID) *model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return nil
	}
	p := s.state.Players[idx]
	return &p
}

// Players returns all players in insertion order
func (s *Store) Players() []model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Player, len(s.state.Players))
	copy(out, s.state.Players)
	return out
}

// SortedPlayers returns players by descending aura; ties keep their
// original relative order
func (s *Store) SortedPlayers() []model.Player {
	out := s.Players()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Aura > out[j].Aura
	})
	return out
}

// Actions returns the full action log, newest first
func (s *Store) Actions() []model.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Action, len(s.state.Actions))
	copy(out, s.state.Actions)
	return out
}

// PlayerActions returns the actions of one player, preserving log order
func (s *Store) PlayerActions(id model.PlayerID) []model.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Action{}
	for _, a := range s.state.Actions {
		if a.PlayerID == id {
			out = append(out, a)
		}
	}
	return out
}

// ResetGame clears both collections
func (s *Store) ResetGame(ctx context.Context) {
	s.mu.Lock()
	s.state = model.EmptySnapshot()
	s.persistLocked()
	s.mu.Unlock()

	s.sync(ctx, "reset game", func(ctx context.Context) error {
		return s.remote.ResetGame(ctx)
	})
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// LoadFromSnapshot replaces the in-memory state without persisting; used
// when switching between sessions
func (s *Store) LoadFromSnapshot(snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = snap.Clone()
	if s.state.Players == nil {
		s.state.Players = []model.Player{}
	}
	if s.state.Actions == nil {
		s.state.Actions = []model.Action{}
	}
}

// ExportData serializes the current snapshot as indented JSON
func (s *Store) ExportData() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		// Snapshot contains only marshalable types
		return []byte("{}")
	}
	return data
}

// ImportData replaces the whole state from an exported payload. Returns
// false if the payload cannot be parsed or lacks the expected collections.
func (s *Store) ImportData(ctx context.Context, data []byte) bool {
	var payload struct {
		Players *[]model.Player `json:"players"`
		Actions *[]model.Action `json:"actions"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		s.logger.Warn("import failed", slog.String("error", err.Error()))
		return false
	}
	if payload.Players == nil || payload.Actions == nil {
		return false
	}

	// Swap in one critical section so no caller can observe (or write
	// into) a half-imported state
	s.mu.Lock()
	s.state = model.Snapshot{
		Players: append([]model.Player{}, *payload.Players...),
		Actions: append([]model.Action{}, *payload.Actions...),
	}
	snap := s.state.Clone()
	s.persistLocked()
	s.mu.Unlock()

	s.sync(ctx, "reset game", func(ctx context.Context) error {
		return s.remote.ResetGame(ctx)
	})
	for i := range snap.Players {
		player := snap.Players[i]
		s.sync(ctx, "insert player", func(ctx context.Context) error {
			return s.remote.InsertPlayer(ctx, &player)
		})
	}
	for i := range snap.Actions {
		action := snap.Actions[i]
		s.sync(ctx, "insert action", func(ctx context.Context) error {
			return s.remote.InsertAction(ctx, &action)
		})
	}

	return true
}

// indexOfLocked returns the index of the player with the given id, or -1.
// Must be called with the mutex held.
func (s *Store) indexOfLocked(id model.PlayerID) int {
	for i := range s.state.Players {
		if s.state.Players[i].ID == id {
			return i
		}
	}
	return -1
}
