package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/auracount/auracount/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestInsertAndLoadPlayer() {
	player := &model.Player{
		ID:        "player-1",
		Name:      "Ana",
		Aura:      5,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.storage.InsertPlayer(s.ctx, player))

	snap, err := s.storage.LoadSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(snap.Players, 1)
	s.Equal("Ana", snap.Players[0].Name)
	s.Equal(5, snap.Players[0].Aura)
}

func (s *StorageSuite) TestPlayersSortedByCreation() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, &model.Player{ID: "p2", Name: "Bo", CreatedAt: base.Add(time.Minute)}))
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, &model.Player{ID: "p1", Name: "Ana", CreatedAt: base}))

	snap, err := s.storage.LoadSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(snap.Players, 2)
	s.Equal("Ana", snap.Players[0].Name)
	s.Equal("Bo", snap.Players[1].Name)
}

func (s *StorageSuite) TestUpdatePlayerRewritesDocument() {
	player := &model.Player{ID: "p1", Name: "Ana"}
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, player))

	player.Aura = 12
	s.Require().NoError(s.storage.UpdatePlayer(s.ctx, player))

	snap, _ := s.storage.LoadSnapshot(s.ctx)
	s.Require().Len(snap.Players, 1)
	s.Equal(12, snap.Players[0].Aura)
}

func (s *StorageSuite) TestDeletePlayer() {
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, &model.Player{ID: "p1", Name: "Ana"}))
	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "p1"))

	snap, _ := s.storage.LoadSnapshot(s.ctx)
	s.Empty(snap.Players)
}

// Action tests

func (s *StorageSuite) TestActionsNewestFirst() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		action := &model.Action{
			ID:        model.ActionID(fmt.Sprintf("a%d", i)),
			PlayerID:  "p1",
			Change:    i,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		s.Require().NoError(s.storage.InsertAction(s.ctx, action))
	}

	snap, err := s.storage.LoadSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(snap.Actions, 3)
	s.Equal(model.ActionID("a2"), snap.Actions[0].ID)
	s.Equal(model.ActionID("a0"), snap.Actions[2].ID)
}

func (s *StorageSuite) TestActionListIsCapped() {
	for i := 0; i < model.MaxActions+10; i++ {
		action := &model.Action{
			ID:       model.ActionID(fmt.Sprintf("a%d", i)),
			PlayerID: "p1",
		}
		s.Require().NoError(s.storage.InsertAction(s.ctx, action))
	}

	snap, err := s.storage.LoadSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Len(snap.Actions, model.MaxActions)
	// Newest entries survive
	s.Equal(model.ActionID(fmt.Sprintf("a%d", model.MaxActions+9)), snap.Actions[0].ID)
}

func (s *StorageSuite) TestDeletePlayerActionsFiltersList() {
	s.Require().NoError(s.storage.InsertAction(s.ctx, &model.Action{ID: "a1", PlayerID: "p1"}))
	s.Require().NoError(s.storage.InsertAction(s.ctx, &model.Action{ID: "a2", PlayerID: "p2"}))
	s.Require().NoError(s.storage.InsertAction(s.ctx, &model.Action{ID: "a3", PlayerID: "p1"}))

	s.Require().NoError(s.storage.DeletePlayerActions(s.ctx, "p1"))

	snap, _ := s.storage.LoadSnapshot(s.ctx)
	s.Require().Len(snap.Actions, 1)
	s.Equal(model.ActionID("a2"), snap.Actions[0].ID)
}

// ResetGame tests

func (s *StorageSuite) TestResetGameClearsPlayersAndActions() {
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, &model.Player{ID: "p1", Name: "Ana"}))
	s.Require().NoError(s.storage.InsertAction(s.ctx, &model.Action{ID: "a1", PlayerID: "p1"}))

	s.Require().NoError(s.storage.ResetGame(s.ctx))

	snap, err := s.storage.LoadSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Empty(snap.Players)
	s.Empty(snap.Actions)
}

func (s *StorageSuite) TestResetGameKeepsSessions() {
	session := &model.Session{ID: "s1", Code: "1234", Name: "kept"}
	s.Require().NoError(s.storage.InsertSession(s.ctx, session))

	s.Require().NoError(s.storage.ResetGame(s.ctx))

	got, err := s.storage.GetSessionByCode(s.ctx, "1234")
	s.Require().NoError(err)
	s.Equal(model.SessionID("s1"), got.ID)
}

// Session tests

func (s *StorageSuite) TestInsertAndGetSessionByCode() {
	session := &model.Session{
		ID:           "s1",
		Code:         "4242",
		Name:         "Friday night",
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		LastActivity: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.storage.InsertSession(s.ctx, session))

	got, err := s.storage.GetSessionByCode(s.ctx, "4242")
	s.Require().NoError(err)
	s.Equal(session.ID, got.ID)
	s.Equal("Friday night", got.Name)
}

func (s *StorageSuite) TestSessionSnapshotIsNotMirrored() {
	session := &model.Session{ID: "s1", Code: "4242", Name: "local scores"}
	session.GameState.Players = []model.Player{{ID: "p1", Name: "Ana", Aura: 7}}

	s.Require().NoError(s.storage.InsertSession(s.ctx, session))

	got, err := s.storage.GetSessionByCode(s.ctx, "4242")
	s.Require().NoError(err)
	s.Empty(got.GameState.Players)
}

func (s *StorageSuite) TestGetSessionByCodeNotFound() {
	_, err := s.storage.GetSessionByCode(s.ctx, "0000")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSessionRemovesCodeIndex() {
	session := &model.Session{ID: "s1", Code: "4242", Name: "gone"}
	s.Require().NoError(s.storage.InsertSession(s.ctx, session))

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "s1"))

	_, err := s.storage.GetSessionByCode(s.ctx, "4242")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Ping tests

func (s *StorageSuite) TestPingSucceeds() {
	s.NoError(s.storage.Ping(s.ctx))
}

func (s *StorageSuite) TestPingFailsWhenDown() {
	s.mini.Close()
	s.Error(s.storage.Ping(s.ctx))
}
