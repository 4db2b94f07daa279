package testutil

import (
	"context"

	"github.com/auracount/auracount/internal/model"
	"github.com/auracount/auracount/internal/storage"
)

// FlakyStore wraps a remote store for tests. While Err is set every call
// fails with it; otherwise calls are delegated and counted.
type FlakyStore struct {
	Inner storage.Store
	Err   error

	// Calls counts delegated calls by method name
	Calls map[string]int
}

// Ensure FlakyStore implements the interface
var _ storage.Store = (*FlakyStore)(nil)

// NewFlakyStore wraps the given store
func NewFlakyStore(inner storage.Store) *FlakyStore {
	return &FlakyStore{
		Inner: inner,
		Calls: map[string]int{},
	}
}

func (s *FlakyStore) record(method string) error {
	s.Calls[method]++
	return s.Err
}

func (s *FlakyStore) Ping(ctx context.Context) error {
	if err := s.record("Ping"); err != nil {
		return err
	}
	return s.Inner.Ping(ctx)
}

func (s *FlakyStore) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	if err := s.record("LoadSnapshot"); err != nil {
		return nil, err
	}
	return s.Inner.LoadSnapshot(ctx)
}

func (s *FlakyStore) InsertPlayer(ctx context.Context, player *model.Player) error {
	if err := s.record("InsertPlayer"); err != nil {
		return err
	}
	return s.Inner.InsertPlayer(ctx, player)
}

func (s *FlakyStore) UpdatePlayer(ctx context.Context, player *model.Player) error {
	if err := s.record("UpdatePlayer"); err != nil {
		return err
	}
	return s.Inner.UpdatePlayer(ctx, player)
}

func (s *FlakyStore) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if err := s.record("DeletePlayer"); err != nil {
		return err
	}
	return s.Inner.DeletePlayer(ctx, id)
}

func (s *FlakyStore) InsertAction(ctx context.Context, action *model.Action) error {
	if err := s.record("InsertAction"); err != nil {
		return err
	}
	return s.Inner.InsertAction(ctx, action)
}

func (s *FlakyStore) DeletePlayerActions(ctx context.Context, playerID model.PlayerID) error {
	if err := s.record("DeletePlayerActions"); err != nil {
		return err
	}
	return s.Inner.DeletePlayerActions(ctx, playerID)
}

func (s *FlakyStore) ResetGame(ctx context.Context) error {
	if err := s.record("ResetGame"); err != nil {
		return err
	}
	return s.Inner.ResetGame(ctx)
}

func (s *FlakyStore) InsertSession(ctx context.Context, session *model.Session) error {
	if err := s.record("InsertSession"); err != nil {
		return err
	}
	return s.Inner.InsertSession(ctx, session)
}

func (s *FlakyStore) UpdateSession(ctx context.Context, session *model.Session) error {
	if err := s.record("UpdateSession"); err != nil {
		return err
	}
	return s.Inner.UpdateSession(ctx, session)
}

func (s *FlakyStore) DeleteSession(ctx context.Context, id model.SessionID) error {
	if err := s.record("DeleteSession"); err != nil {
		return err
	}
	return s.Inner.DeleteSession(ctx, id)
}

func (s *FlakyStore) GetSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	if err := s.record("GetSessionByCode"); err != nil {
		return nil, err
	}
	return s.Inner.GetSessionByCode(ctx, code)
}
