package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/auracount/auracount/internal/model"
	"github.com/auracount/auracount/internal/storage"
)

// Storage is a Redis-backed implementation of the remote store interface.
// Rows are stored as JSON documents: players and sessions as keyed
// documents with index sets, actions as a capped list (newest first).
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Ping probes the Redis connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Storage) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	snap := model.EmptySnapshot()

	// Players: fetch all documents via the index set
	playerKeys, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(playerKeys) > 0 {
		values, err := s.client.MGet(ctx, playerKeys...).Result()
		if err != nil {
			return nil, err
		}
		for _, val := range values {
			if val == nil {
				continue // index entry for a deleted player
			}
			var player model.Player
			if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
				continue // skip invalid data
			}
			snap.Players = append(snap.Players, player)
		}
		sort.SliceStable(snap.Players, func(i, j int) bool {
			return snap.Players[i].CreatedAt.Before(snap.Players[j].CreatedAt)
		})
	}

	// Actions: the list is already newest-first and capped
	rawActions, err := s.client.LRange(ctx, actionsKey(), 0, model.MaxActions-1).Result()
	if err != nil {
		return nil, err
	}
	for _, raw := range rawActions {
		var action model.Action
		if err := json.Unmarshal([]byte(raw), &action); err != nil {
			continue
		}
		snap.Actions = append(snap.Actions, action)
	}

	return &snap, nil
}

// Player operations

func (s *Storage) InsertPlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, playersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	// Documents are whole-row, so update is a rewrite
	return s.InsertPlayer(ctx, player)
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	key := playerKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, playersIndexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

// Action operations

func (s *Storage) InsertAction(ctx context.Context, action *model.Action) error {
	data, err := json.Marshal(action)
	if err != nil {
		return err
	}

	// Prepend and cap in one pipeline
	pipe := s.client.Pipeline()
	pipe.LPush(ctx, actionsKey(), data)
	pipe.LTrim(ctx, actionsKey(), 0, model.MaxActions-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) DeletePlayerActions(ctx context.Context, playerID model.PlayerID) error {
	raw, err := s.client.LRange(ctx, actionsKey(), 0, -1).Result()
	if err != nil {
		return err
	}

	var kept []interface{}
	for _, item := range raw {
		var action model.Action
		if err := json.Unmarshal([]byte(item), &action); err != nil {
			continue
		}
		if action.PlayerID != playerID {
			kept = append(kept, item)
		}
	}

	// Rewrite the list without the removed player's entries. RPush keeps
	// the newest-first order of the scan.
	pipe := s.client.Pipeline()
	pipe.Del(ctx, actionsKey())
	if len(kept) > 0 {
		pipe.RPush(ctx, actionsKey(), kept...)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ResetGame(ctx context.Context) error {
	playerKeys, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, key := range playerKeys {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, playersIndexKey())
	pipe.Del(ctx, actionsKey())
	_, err = pipe.Exec(ctx)
	return err
}

// Session operations

func (s *Storage) InsertSession(ctx context.Context, session *model.Session) error {
	// Only the session row is mirrored; the embedded snapshot stays local
	row := *session
	row.GameState = model.EmptySnapshot()

	data, err := json.Marshal(&row)
	if err != nil {
		return err
	}

	key := sessionKey(session.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, sessionsIndexKey(), key)
	pipe.Set(ctx, sessionCodeIndexKey(session.Code), string(session.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) UpdateSession(ctx context.Context, session *model.Session) error {
	return s.InsertSession(ctx, session)
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	// Fetch the document first to clean up the code index
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, sessionsIndexKey(), sessionKey(id))
	if err == nil {
		var session model.Session
		if jsonErr := json.Unmarshal(data, &session); jsonErr == nil {
			pipe.Del(ctx, sessionCodeIndexKey(session.Code))
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	idStr, err := s.client.Get(ctx, sessionCodeIndexKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	data, err := s.client.Get(ctx, sessionKey(model.SessionID(idStr))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
