package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auracount/auracount/internal/model"
	"github.com/auracount/auracount/internal/storage"
)

const (
	selectPlayersQuery = `
        SELECT id, name, aura, created_at, profile_image, bio
        FROM players
        ORDER BY created_at ASC`

	selectActionsQuery = `
        SELECT id, player_id, player_name, change, timestamp, reason
        FROM aura_actions
        ORDER BY timestamp DESC
        LIMIT $1`

	insertPlayerQuery = `
        INSERT INTO players (id, name, aura, created_at, profile_image, bio)
        VALUES ($1, $2, $3, $4, $5, $6)`

	updatePlayerQuery = `
        UPDATE players
        SET name = $2, aura = $3, profile_image = $4, bio = $5
        WHERE id = $1`

	deletePlayerQuery = `DELETE FROM players WHERE id = $1`

	insertActionQuery = `
        INSERT INTO aura_actions (id, player_id, player_name, change, timestamp, reason)
        VALUES ($1, $2, $3, $4, $5, $6)`

	deletePlayerActionsQuery = `DELETE FROM aura_actions WHERE player_id = $1`

	deleteAllActionsQuery = `DELETE FROM aura_actions`
	deleteAllPlayersQuery = `DELETE FROM players`

	insertSessionQuery = `
        INSERT INTO game_sessions (id, code, name, created_at, last_activity)
        VALUES ($1, $2, $3, $4, $5)`

	updateSessionQuery = `
        UPDATE game_sessions
        SET name = $2, last_activity = $3
        WHERE id = $1`

	deleteSessionQuery = `DELETE FROM game_sessions WHERE id = $1`

	selectSessionByCodeQuery = `
        SELECT id, code, name, created_at, last_activity
        FROM game_sessions
        WHERE code = $1`
)

// Storage is a PostgreSQL-backed implementation of the remote store
// interface. The table schema (players, aura_actions, game_sessions) is
// owned by the hosting side.
type Storage struct {
	pool *pgxpool.Pool
	cfg  Config
}

// New creates a PostgreSQL storage instance and verifies the connection
func New(ctx context.Context, cfg Config) (*Storage, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{pool: pool, cfg: cfg}, nil
}

// NewWithPool creates a PostgreSQL storage with an existing pool (for testing)
func NewWithPool(pool *pgxpool.Pool, cfg Config) *Storage {
	return &Storage{pool: pool, cfg: cfg}
}

// Close releases the connection pool
func (s *Storage) Close() {
	s.pool.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Ping probes the database connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Row types mirroring the hosted tables

type playerRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Aura         int       `db:"aura"`
	CreatedAt    time.Time `db:"created_at"`
	ProfileImage *string   `db:"profile_image"`
	Bio          *string   `db:"bio"`
}

type actionRow struct {
	ID         string    `db:"id"`
	PlayerID   string    `db:"player_id"`
	PlayerName string    `db:"player_name"`
	Change     int       `db:"change"`
	Timestamp  time.Time `db:"timestamp"`
	Reason     *string   `db:"reason"`
}

type sessionRow struct {
	ID           string    `db:"id"`
	Code         string    `db:"code"`
	Name         string    `db:"name"`
	CreatedAt    time.Time `db:"created_at"`
	LastActivity time.Time `db:"last_activity"`
}

func (r playerRow) toModel() model.Player {
	p := model.Player{
		ID:        model.PlayerID(r.ID),
		Name:      r.Name,
		Aura:      r.Aura,
		CreatedAt: r.CreatedAt,
	}
	if r.ProfileImage != nil {
		p.ProfileImage = *r.ProfileImage
	}
	if r.Bio != nil {
		p.Bio = *r.Bio
	}
	return p
}

func (r actionRow) toModel() model.Action {
	a := model.Action{
		ID:         model.ActionID(r.ID),
		PlayerID:   model.PlayerID(r.PlayerID),
		PlayerName: r.PlayerName,
		Change:     r.Change,
		Timestamp:  r.Timestamp,
	}
	if r.Reason != nil {
		a.Reason = *r.Reason
	}
	return a
}

func (r sessionRow) toModel() model.Session {
	return model.Session{
		ID:           model.SessionID(r.ID),
		Code:         model.SessionCode(r.Code),
		Name:         r.Name,
		CreatedAt:    r.CreatedAt,
		LastActivity: r.LastActivity,
		GameState:    model.EmptySnapshot(),
	}
}

// nullable maps an empty string to SQL NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Storage) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var players []playerRow
	if err := pgxscan.Select(ctx, s.pool, &players, selectPlayersQuery); err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}

	var actions []actionRow
	if err := pgxscan.Select(ctx, s.pool, &actions, selectActionsQuery, model.MaxActions); err != nil {
		return nil, fmt.Errorf("failed to load actions: %w", err)
	}

	snap := model.EmptySnapshot()
	for _, row := range players {
		snap.Players = append(snap.Players, row.toModel())
	}
	for _, row := range actions {
		snap.Actions = append(snap.Actions, row.toModel())
	}
	return &snap, nil
}

// Player operations

func (s *Storage) InsertPlayer(ctx context.Context, player *model.Player) error {
	_, err := s.pool.Exec(ctx, insertPlayerQuery,
		string(player.ID), player.Name, player.Aura, player.CreatedAt,
		nullable(player.ProfileImage), nullable(player.Bio))
	return err
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.pool.Exec(ctx, updatePlayerQuery,
		string(player.ID), player.Name, player.Aura,
		nullable(player.ProfileImage), nullable(player.Bio))
	return err
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	_, err := s.pool.Exec(ctx, deletePlayerQuery, string(id))
	return err
}

// Action operations

func (s *Storage) InsertAction(ctx context.Context, action *model.Action) error {
	_, err := s.pool.Exec(ctx, insertActionQuery,
		string(action.ID), string(action.PlayerID), action.PlayerName,
		action.Change, action.Timestamp, nullable(action.Reason))
	return err
}

func (s *Storage) DeletePlayerActions(ctx context.Context, playerID model.PlayerID) error {
	_, err := s.pool.Exec(ctx, deletePlayerActionsQuery, string(playerID))
	return err
}

func (s *Storage) ResetGame(ctx context.Context) error {
	// Actions reference players, so they go first
	if _, err := s.pool.Exec(ctx, deleteAllActionsQuery); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, deleteAllPlayersQuery)
	return err
}

// Session operations

func (s *Storage) InsertSession(ctx context.Context, session *model.Session) error {
	_, err := s.pool.Exec(ctx, insertSessionQuery,
		string(session.ID), string(session.Code), session.Name,
		session.CreatedAt, session.LastActivity)
	return err
}

func (s *Storage) UpdateSession(ctx context.Context, session *model.Session) error {
	_, err := s.pool.Exec(ctx, updateSessionQuery,
		string(session.ID), session.Name, session.LastActivity)
	return err
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	_, err := s.pool.Exec(ctx, deleteSessionQuery, string(id))
	return err
}

func (s *Storage) GetSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	var row sessionRow
	err := pgxscan.Get(ctx, s.pool, &row, selectSessionByCodeQuery, string(code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session by code %s: %w", code, err)
	}

	session := row.toModel()
	return &session, nil
}
