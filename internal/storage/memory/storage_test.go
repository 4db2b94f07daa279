package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/auracount/auracount/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestPingAlwaysSucceeds() {
	s.NoError(s.storage.Ping(s.ctx))
}

func (s *StorageSuite) TestLoadSnapshotOrdersPlayersByCreation() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, &model.Player{ID: "p2", Name: "Bo", CreatedAt: base.Add(time.Minute)}))
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, &model.Player{ID: "p1", Name: "Ana", CreatedAt: base}))

	snap, err := s.storage.LoadSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(snap.Players, 2)
	s.Equal("Ana", snap.Players[0].Name)
	s.Equal("Bo", snap.Players[1].Name)
}

func (s *StorageSuite) TestLoadSnapshotOrdersActionsNewestFirstAndCaps() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < model.MaxActions+3; i++ {
		action := &model.Action{
			ID:        model.ActionID(fmt.Sprintf("a%d", i)),
			PlayerID:  "p1",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		s.Require().NoError(s.storage.InsertAction(s.ctx, action))
	}

	snap, err := s.storage.LoadSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Len(snap.Actions, model.MaxActions)
	s.Equal(model.ActionID(fmt.Sprintf("a%d", model.MaxActions+2)), snap.Actions[0].ID)
}

func (s *StorageSuite) TestDeletePlayerAndActions() {
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, &model.Player{ID: "p1", Name: "Ana"}))
	s.Require().NoError(s.storage.InsertAction(s.ctx, &model.Action{ID: "a1", PlayerID: "p1"}))
	s.Require().NoError(s.storage.InsertAction(s.ctx, &model.Action{ID: "a2", PlayerID: "p2"}))

	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "p1"))
	s.Require().NoError(s.storage.DeletePlayerActions(s.ctx, "p1"))

	snap, _ := s.storage.LoadSnapshot(s.ctx)
	s.Empty(snap.Players)
	s.Require().Len(snap.Actions, 1)
	s.Equal(model.ActionID("a2"), snap.Actions[0].ID)
}

func (s *StorageSuite) TestResetGameKeepsSessions() {
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, &model.Player{ID: "p1", Name: "Ana"}))
	s.Require().NoError(s.storage.InsertSession(s.ctx, &model.Session{ID: "s1", Code: "1234"}))

	s.Require().NoError(s.storage.ResetGame(s.ctx))

	snap, _ := s.storage.LoadSnapshot(s.ctx)
	s.Empty(snap.Players)

	got, err := s.storage.GetSessionByCode(s.ctx, "1234")
	s.Require().NoError(err)
	s.Equal(model.SessionID("s1"), got.ID)
}

func (s *StorageSuite) TestSessionSnapshotIsNotMirrored() {
	session := &model.Session{ID: "s1", Code: "4242"}
	session.GameState.Players = []model.Player{{ID: "p1", Name: "Ana"}}

	s.Require().NoError(s.storage.InsertSession(s.ctx, session))

	got, err := s.storage.GetSessionByCode(s.ctx, "4242")
	s.Require().NoError(err)
	s.Empty(got.GameState.Players)
}

func (s *StorageSuite) TestGetSessionByCodeNotFound() {
	_, err := s.storage.GetSessionByCode(s.ctx, "0000")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	s.Require().NoError(s.storage.InsertSession(s.ctx, &model.Session{ID: "s1", Code: "4242"}))
	s.Require().NoError(s.storage.DeleteSession(s.ctx, "s1"))

	_, err := s.storage.GetSessionByCode(s.ctx, "4242")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
