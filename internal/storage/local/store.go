// Package local implements the device-side storage collaborator: whole-
// document JSON slots on disk. The snapshot has a primary and a backup
// slot; the session directory has one slot. A missing file means "no saved
// state", never an error.
package local

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/auracount/auracount/internal/model"
)

const (
	snapshotFile  = "game-state.json"
	backupFile    = "game-state.backup.json"
	directoryFile = "game-sessions.json"
)

// Store persists whole-document JSON state under a data directory
type Store struct {
	mu     sync.Mutex
	dir    string
	logger *slog.Logger
}

// New creates a local store rooted at dir, creating it if needed
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the data directory
func (s *Store) Dir() string {
	return s.dir
}

// SaveSnapshot writes the snapshot to both the primary and the backup slot
func (s *Store) SaveSnapshot(snap *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path(snapshotFile), data, 0o600); err != nil {
		return err
	}
	if err := os.WriteFile(s.path(backupFile), data, 0o600); err != nil {
		// Primary write succeeded; a failed backup is logged, not fatal
		s.logger.Warn("failed to write snapshot backup", slog.String("error", err.Error()))
	}
	return nil
}

// LoadSnapshot reads the last saved snapshot, falling back to the backup
// slot if the primary is corrupt or unreadable. An absent file yields an
// empty snapshot.
func (s *Store) LoadSnapshot() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap, ok := s.readSnapshot(snapshotFile); ok {
		return snap
	}
	s.logger.Warn("primary snapshot unreadable, trying backup")
	if snap, ok := s.readSnapshot(backupFile); ok {
		return snap
	}
	s.logger.Warn("backup snapshot unreadable, starting empty")
	empty := model.EmptySnapshot()
	return &empty
}

func (s *Store) readSnapshot(name string) (*model.Snapshot, bool) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			empty := model.EmptySnapshot()
			return &empty, true
		}
		return nil, false
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	if snap.Players == nil {
		snap.Players = []model.Player{}
	}
	if snap.Actions == nil {
		snap.Actions = []model.Action{}
	}
	return &snap, true
}

// SaveDirectory writes the session directory slot
func (s *Store) SaveDirectory(state *model.DirectoryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(directoryFile), data, 0o600)
}

// LoadDirectory reads the session directory slot. Absent or corrupt data
// yields an empty directory.
func (s *Store) LoadDirectory() *model.DirectoryState {
	s.mu.Lock()
	defer s.mu.Unlock()

	empty := &model.DirectoryState{Sessions: []*model.Session{}}

	data, err := os.ReadFile(s.path(directoryFile))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read session directory", slog.String("error", err.Error()))
		}
		return empty
	}

	var state model.DirectoryState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("session directory unreadable, starting empty", slog.String("error", err.Error()))
		return empty
	}
	if state.Sessions == nil {
		state.Sessions = []*model.Session{}
	}
	return &state
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
