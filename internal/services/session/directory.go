package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/auracount/auracount/internal/dependencies/clock"
	"github.com/auracount/auracount/internal/dependencies/random"
	"github.com/auracount/auracount/internal/model"
	"github.com/auracount/auracount/internal/storage"
	"github.com/auracount/auracount/internal/storage/local"
)

// CodeAttempts bounds rejection sampling for session codes. With 9000
// possible codes, exhausting it means the code space is effectively full.
const CodeAttempts = 100

// Directory manages named, code-addressed sessions and tracks which one
// is current. The directory is persisted to device storage on every
// mutation; session create/delete are mirrored remotely best-effort.
type Directory struct {
	mu        sync.Mutex
	sessions  []*model.Session
	currentID model.SessionID

	remote storage.Store
	local  *local.Store
	health *storage.Health
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

// New creates a session directory. Call Load before use.
func New(remote storage.Store, localStore *local.Store, health *storage.Health, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Directory {
	return &Directory{
		sessions: []*model.Session{},
		remote:   remote,
		local:    localStore,
		health:   health,
		clock:    clk,
		random:   rnd,
		logger:   logger,
	}
}

// Load restores the directory from device storage
func (d *Directory) Load() {
	state := d.local.LoadDirectory()
	d.mu.Lock()
	d.sessions = state.Sessions
	d.currentID = state.CurrentSessionID
	d.mu.Unlock()
}

// persistLocked writes the directory to device storage. Must be called
// with the mutex held. Failures are logged only.
func (d *Directory) persistLocked() {
	state := &model.DirectoryState{
		Sessions:         d.sessions,
		CurrentSessionID: d.currentID,
	}
	if err := d.local.SaveDirectory(state); err != nil {
		d.logger.Warn("failed to save session directory", slog.String("error", err.Error()))
	}
}

// sync issues one best-effort remote call. Failures are logged and flip
// the health state to offline.
func (d *Directory) sync(ctx context.Context, op string, fn func(context.Context) error) {
	if !d.health.Online() {
		return
	}
	if err := fn(ctx); err != nil {
		d.logger.Warn("remote sync failed",
			slog.String("op", op),
			slog.String("error", err.Error()))
		d.health.MarkOffline()
	}
}

// generateCodeLocked draws uniform 4-digit codes until one is free among
// the known sessions. Must be called with the mutex held.
func (d *Directory) generateCodeLocked() (model.SessionCode, error) {
	for attempt := 0; attempt < CodeAttempts; attempt++ {
		code := model.SessionCode(fmt.Sprintf("%d", 1000+d.random.Intn(9000)))
		if d.findByCodeLocked(code) == nil {
			return code, nil
		}
	}
	return "", model.ErrCodeSpaceExhausted
}

// CreateSession builds a session with a fresh unique code and an empty
// snapshot, inserts it at the front of the list, and makes it current
func (d *Directory) CreateSession(ctx context.Context, name string) (*model.Session, error) {
	d.mu.Lock()
	code, err := d.generateCodeLocked()
	if err != nil {
		d.mu.Unlock()
		return nil, err
	}

	now := d.clock.Now()
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		trimmed = fmt.Sprintf("Game %s", code)
	}

	session := &model.Session{
		ID:           model.SessionID(uuid.NewString()),
		Code:         code,
		Name:         trimmed,
		CreatedAt:    now,
		LastActivity: now,
		GameState:    model.EmptySnapshot(),
	}

	d.sessions = append([]*model.Session{session}, d.sessions...)
	d.currentID = session.ID
	d.persistLocked()
	out := cloneSession(session)
	d.mu.Unlock()

	// Mirror the copy: the live session stays mutable under the mutex
	d.sync(ctx, "insert session", func(ctx context.Context) error {
		return d.remote.InsertSession(ctx, out)
	})

	return out, nil
}

// FindSessionByCode looks up a session by exact code. Misses are retried
// against the remote store when online, and remote hits are cached
// locally. Returns ErrSessionNotFound when no session matches.
func (d *Directory) FindSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	d.mu.Lock()
	if session := d.findByCodeLocked(code); session != nil {
		out := cloneSession(session)
		d.mu.Unlock()
		return out, nil
	}
	d.mu.Unlock()

	if !d.health.Online() {
		return nil, model.ErrSessionNotFound
	}

	session, err := d.remote.GetSessionByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, model.ErrSessionNotFound) {
			d.logger.Warn("remote session lookup failed", slog.String("error", err.Error()))
			d.health.MarkOffline()
		}
		return nil, model.ErrSessionNotFound
	}

	// Cache the remote hit
	d.mu.Lock()
	if existing := d.findByCodeLocked(code); existing != nil {
		out := cloneSession(existing)
		d.mu.Unlock()
		return out, nil
	}
	d.sessions = append(d.sessions, session)
	d.persistLocked()
	out := cloneSession(session)
	d.mu.Unlock()

	return out, nil
}

// GetSession returns a copy of the session with the given id, or nil
func (d *Directory) GetSession(id model.SessionID) *model.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	if session := d.findByIDLocked(id); session != nil {
		return cloneSession(session)
	}
	return nil
}

// Sessions returns copies of all sessions in list order
func (d *Directory) Sessions() []*model.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*model.Session, len(d.sessions))
	for i, session := range d.sessions {
		out[i] = cloneSession(session)
	}
	return out
}

// SetCurrentSession points the current-session marker at the given id and
// touches its last-activity. Returns false if the id is unknown.
func (d *Directory) SetCurrentSession(ctx context.Context, id model.SessionID) bool {
	d.mu.Lock()
	session := d.findByIDLocked(id)
	if session == nil {
		d.mu.Unlock()
		return false
	}
	d.currentID = id
	session.LastActivity = d.clock.Now()
	touched := *session
	d.persistLocked()
	d.mu.Unlock()

	d.sync(ctx, "update session", func(ctx context.Context) error {
		return d.remote.UpdateSession(ctx, &touched)
	})

	return true
}

// CurrentSession returns a copy of the current session, or nil when unset
func (d *Directory) CurrentSession() *model.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.currentID == "" {
		return nil
	}
	if session := d.findByIDLocked(d.currentID); session != nil {
		return cloneSession(session)
	}
	return nil
}

// UpdateSessionGameState replaces a session's embedded snapshot. This is
// device-local only: the snapshot is not mirrored to the remote store.
func (d *Directory) UpdateSessionGameState(id model.SessionID, snap model.Snapshot) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	session := d.findByIDLocked(id)
	if session == nil {
		return false
	}
	session.GameState = snap.Clone()
	session.LastActivity = d.clock.Now()
	d.persistLocked()
	return true
}

// DeleteSession removes a session, clearing the current pointer if it
// referenced it. Returns whether a session was actually removed.
func (d *Directory) DeleteSession(ctx context.Context, id model.SessionID) bool {
	d.mu.Lock()
	found := false
	sessions := d.sessions[:0]
	for _, session := range d.sessions {
		if session.ID == id {
			found = true
			continue
		}
		sessions = append(sessions, session)
	}
	if !found {
		d.mu.Unlock()
		return false
	}
	d.sessions = sessions
	if d.currentID == id {
		d.currentID = ""
	}
	d.persistLocked()
	d.mu.Unlock()

	d.sync(ctx, "delete session", func(ctx context.Context) error {
		return d.remote.DeleteSession(ctx, id)
	})

	return true
}

// CleanOldSessions removes sessions whose last activity predates the
// threshold and returns how many were removed. Never invoked
// automatically; callers trigger it as a maintenance job.
func (d *Directory) CleanOldSessions(ctx context.Context, thresholdDays int) int {
	cutoff := d.clock.Now().AddDate(0, 0, -thresholdDays)

	d.mu.Lock()
	var removed []*model.Session
	sessions := d.sessions[:0]
	for _, session := range d.sessions {
		if session.LastActivity.After(cutoff) {
			sessions = append(sessions, session)
		} else {
			removed = append(removed, session)
		}
	}
	d.sessions = sessions
	if len(removed) > 0 {
		for _, session := range removed {
			if d.currentID == session.ID {
				d.currentID = ""
			}
		}
		d.persistLocked()
	}
	d.mu.Unlock()

	for _, session := range removed {
		id := session.ID
		d.sync(ctx, "delete session", func(ctx context.Context) error {
			return d.remote.DeleteSession(ctx, id)
		})
	}

	return len(removed)
}

// cloneSession copies a session including its embedded snapshot, so
// callers cannot mutate directory state through the result
func cloneSession(s *model.Session) *model.Session {
	out := *s
	out.GameState = s.GameState.Clone()
	return &out
}

func (d *Directory) findByCodeLocked(code model.SessionCode) *model.Session {
	for _, session := range d.sessions {
		if session.Code == code {
			return session
		}
	}
	return nil
}

func (d *Directory) findByIDLocked(id model.SessionID) *model.Session {
	for _, session := range d.sessions {
		if session.ID == id {
			return session
		}
	}
	return nil
}
