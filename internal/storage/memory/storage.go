package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/auracount/auracount/internal/model"
	"github.com/auracount/auracount/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players  map[model.PlayerID]*model.Player
	actions  map[model.ActionID]*model.Action
	sessions map[model.SessionID]*model.Session
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:  make(map[model.PlayerID]*model.Player),
		actions:  make(map[model.ActionID]*model.Action),
		sessions: make(map[model.SessionID]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Ping always succeeds for the in-memory store
func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.EmptySnapshot()
	for _, p := range s.players {
		snap.Players = append(snap.Players, *p)
	}
	sort.SliceStable(snap.Players, func(i, j int) bool {
		return snap.Players[i].CreatedAt.Before(snap.Players[j].CreatedAt)
	})

	for _, a := range s.actions {
		snap.Actions = append(snap.Actions, *a)
	}
	sort.SliceStable(snap.Actions, func(i, j int) bool {
		return snap.Actions[i].Timestamp.After(snap.Actions[j].Timestamp)
	})
	if len(snap.Actions) > model.MaxActions {
		snap.Actions = snap.Actions[:model.MaxActions]
	}

	return &snap, nil
}

// Player operations

func (s *Storage) InsertPlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[player.ID] = &p
	return nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[player.ID] = &p
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Action operations

func (s *Storage) InsertAction(ctx context.Context, action *model.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *action
	s.actions[action.ID] = &a
	return nil
}

func (s *Storage) DeletePlayerActions(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.actions {
		if a.PlayerID == playerID {
			delete(s.actions, id)
		}
	}
	return nil
}

func (s *Storage) ResetGame(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[model.PlayerID]*model.Player)
	s.actions = make(map[model.ActionID]*model.Action)
	return nil
}

// Session operations

func (s *Storage) InsertSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := *session
	sess.GameState = model.EmptySnapshot() // snapshot is not stored remotely
	s.sessions[session.ID] = &sess
	return nil
}

func (s *Storage) UpdateSession(ctx context.Context, session *model.Session) error {
	return s.InsertSession(ctx, session)
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Storage) GetSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		if sess.Code == code {
			out := *sess
			return &out, nil
		}
	}
	return nil, model.ErrSessionNotFound
}
