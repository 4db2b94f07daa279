package score

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/auracount/auracount/internal/dependencies/mocks"
	"github.com/auracount/auracount/internal/model"
	"github.com/auracount/auracount/internal/storage"
	"github.com/auracount/auracount/internal/storage/local"
	"github.com/auracount/auracount/internal/storage/memory"
	"github.com/auracount/auracount/internal/testutil"
)

type StoreSuite struct {
	suite.Suite
	remote *testutil.FlakyStore
	local  *local.Store
	health *storage.Health
	clock  *mocks.MockClock
	store  *Store
	ctx    context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	logger := testutil.NopLogger()

	s.remote = testutil.NewFlakyStore(memory.New())
	localStore, err := local.New(s.T().TempDir(), logger)
	s.Require().NoError(err)
	s.local = localStore

	s.health = storage.NewHealth(s.remote, logger)
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.store = New(s.remote, s.local, s.health, s.clock, logger)
	s.ctx = context.Background()

	s.store.Load(s.ctx)
	s.Require().True(s.store.Connected())
}

// AddPlayer tests

func (s *StoreSuite) TestAddPlayerStartsAtZeroAura() {
	player := s.store.AddPlayer(s.ctx, "Ana")

	s.NotEmpty(player.ID)
	s.Equal("Ana", player.Name)
	s.Equal(0, player.Aura)
	s.Equal(s.clock.CurrentTime, player.CreatedAt)
}

func (s *StoreSuite) TestAddPlayerTrimsName() {
	player := s.store.AddPlayer(s.ctx, "  Ana  ")
	s.Equal("Ana", player.Name)
}

func (s *StoreSuite) TestAddPlayerMirrorsToRemote() {
	player := s.store.AddPlayer(s.ctx, "Ana")

	snap, err := s.remote.LoadSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(snap.Players, 1)
	s.Equal(player.ID, snap.Players[0].ID)
}

func (s *StoreSuite) TestAddPlayerKeepsInsertionOrder() {
	s.store.AddPlayer(s.ctx, "Ana")
	s.store.AddPlayer(s.ctx, "Bo")
	s.store.AddPlayer(s.ctx, "Cy")

	players := s.store.Players()
	s.Require().Len(players, 3)
	s.Equal("Ana", players[0].Name)
	s.Equal("Bo", players[1].Name)
	s.Equal("Cy", players[2].Name)
}

// UpdatePlayer tests

func (s *StoreSuite) TestUpdatePlayerMergesFields() {
	player := s.store.AddPlayer(s.ctx, "Ana")

	bio := "captain"
	updated := s.store.UpdatePlayer(s.ctx, player.ID, model.PlayerUpdate{Bio: &bio})
	s.Require().NotNil(updated)

	s.Equal("Ana", updated.Name)
	s.Equal("captain", updated.Bio)
}

func (s *StoreSuite) TestUpdatePlayerUnknownIDReturnsNil() {
	s.Nil(s.store.UpdatePlayer(s.ctx, "missing", model.PlayerUpdate{}))
}

func (s *StoreSuite) TestUpdatePlayerDoesNotTouchPastActions() {
	player := s.store.AddPlayer(s.ctx, "Ana")
	s.store.ChangeAura(s.ctx, player.ID, 5, "clutch play")

	name := "Anastasia"
	s.store.UpdatePlayer(s.ctx, player.ID, model.PlayerUpdate{Name: &name})

	actions := s.store.Actions()
	s.Require().Len(actions, 1)
	s.Equal("Ana", actions[0].PlayerName)
}

// RemovePlayer tests

func (s *StoreSuite) TestRemovePlayerCascadesActions() {
	ana := s.store.AddPlayer(s.ctx, "Ana")
	bo := s.store.AddPlayer(s.ctx, "Bo")
	s.store.ChangeAura(s.ctx, ana.ID, 5, "")
	s.store.ChangeAura(s.ctx, bo.ID, 3, "")

	s.True(s.store.RemovePlayer(s.ctx, ana.ID))

	s.Nil(s.store.Player(ana.ID))
	actions := s.store.Actions()
	s.Require().Len(actions, 1)
	s.Equal(bo.ID, actions[0].PlayerID)
}

func (s *StoreSuite) TestRemovePlayerUnknownIDReturnsFalse() {
	s.False(s.store.RemovePlayer(s.ctx, "missing"))
}

// ChangeAura tests

func (s *StoreSuite) TestChangeAuraAccumulates() {
	ana := s.store.AddPlayer(s.ctx, "Ana")
	s.store.AddPlayer(s.ctx, "Bo")

	s.True(s.store.ChangeAura(s.ctx, ana.ID, 10, "won the round"))
	s.True(s.store.ChangeAura(s.ctx, ana.ID, -3, "table talk"))

	s.Equal(7, s.store.Player(ana.ID).Aura)

	players := s.store.Players()
	s.Equal(0, players[1].Aura)

	actions := s.store.Actions()
	s.Require().Len(actions, 2)
	// Newest first
	s.Equal(-3, actions[0].Change)
	s.Equal(10, actions[1].Change)
	s.Equal("Ana", actions[0].PlayerName)
	s.Equal("table talk", actions[0].Reason)
}

func (s *StoreSuite) TestChangeAuraUnknownPlayerReturnsFalse() {
	s.False(s.store.ChangeAura(s.ctx, "missing", 5, ""))
	s.Empty(s.store.Actions())
}

func (s *StoreSuite) TestActionLogIsCapped() {
	ana := s.store.AddPlayer(s.ctx, "Ana")

	for i := 0; i < model.MaxActions+5; i++ {
		s.clock.Advance(time.Second)
		s.Require().True(s.store.ChangeAura(s.ctx, ana.ID, 1, fmt.Sprintf("round %d", i)))
	}

	actions := s.store.Actions()
	s.Require().Len(actions, model.MaxActions)
	// The newest entries survive the trim
	s.Equal(fmt.Sprintf("round %d", model.MaxActions+4), actions[0].Reason)
	// The aura total is unaffected by trimming
	s.Equal(model.MaxActions+5, s.store.Player(ana.ID).Aura)
}

// Query tests

func (s *StoreSuite) TestSortedPlayersDescendingStable() {
	ana := s.store.AddPlayer(s.ctx, "Ana")
	bo := s.store.AddPlayer(s.ctx, "Bo")
	cy := s.store.AddPlayer(s.ctx, "Cy")

	s.store.ChangeAura(s.ctx, cy.ID, 5, "")
	s.store.ChangeAura(s.ctx, bo.ID, 5, "")

	sorted := s.store.SortedPlayers()
	s.Require().Len(sorted, 3)
	// Bo and Cy tie at 5; insertion order breaks the tie
	s.Equal(bo.ID, sorted[0].ID)
	s.Equal(cy.ID, sorted[1].ID)
	s.Equal(ana.ID, sorted[2].ID)
}

func (s *StoreSuite) TestPlayerActionsFiltersLog() {
	ana := s.store.AddPlayer(s.ctx, "Ana")
	bo := s.store.AddPlayer(s.ctx, "Bo")
	s.store.ChangeAura(s.ctx, ana.ID, 1, "")
	s.store.ChangeAura(s.ctx, bo.ID, 2, "")
	s.store.ChangeAura(s.ctx, ana.ID, 3, "")

	actions := s.store.PlayerActions(ana.ID)
	s.Require().Len(actions, 2)
	s.Equal(3, actions[0].Change)
	s.Equal(1, actions[1].Change)
}

// ResetGame tests

func (s *StoreSuite) TestResetGameClearsEverything() {
	ana := s.store.AddPlayer(s.ctx, "Ana")
	s.store.ChangeAura(s.ctx, ana.ID, 5, "")

	s.store.ResetGame(s.ctx)

	s.Empty(s.store.Players())
	s.Empty(s.store.Actions())

	snap, err := s.remote.LoadSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Empty(snap.Players)
}

// Export / Import tests

func (s *StoreSuite) TestExportImportRoundTrip() {
	ana := s.store.AddPlayer(s.ctx, "Ana")
	s.store.ChangeAura(s.ctx, ana.ID, 7, "round win")

	data := s.store.ExportData()

	s.store.ResetGame(s.ctx)
	s.Require().Empty(s.store.Players())

	s.Require().True(s.store.ImportData(s.ctx, data))

	players := s.store.Players()
	s.Require().Len(players, 1)
	s.Equal(ana.ID, players[0].ID)
	s.Equal(7, players[0].Aura)

	actions := s.store.Actions()
	s.Require().Len(actions, 1)
	s.Equal("round win", actions[0].Reason)
}

func (s *StoreSuite) TestExportIsIndentedJSON() {
	var snap model.Snapshot
	s.Require().NoError(json.Unmarshal(s.store.ExportData(), &snap))
}

func (s *StoreSuite) TestImportRejectsMalformedJSON() {
	s.False(s.store.ImportData(s.ctx, []byte("not json")))
}

func (s *StoreSuite) TestImportRejectsMissingCollections() {
	s.False(s.store.ImportData(s.ctx, []byte(`{"players": []}`)))
	s.False(s.store.ImportData(s.ctx, []byte(`{"actions": []}`)))
	s.True(s.store.ImportData(s.ctx, []byte(`{"players": [], "actions": []}`)))
}

func (s *StoreSuite) TestImportDoesNotDestroyStateOnBadPayload() {
	s.store.AddPlayer(s.ctx, "Ana")

	s.False(s.store.ImportData(s.ctx, []byte(`{"players": []}`)))
	s.Len(s.store.Players(), 1)
}

func (s *StoreSuite) TestImportReplacesExistingStateEverywhere() {
	s.store.AddPlayer(s.ctx, "Stale")

	resets := s.remote.Calls["ResetGame"]
	payload := []byte(`{"players": [{"id": "p-new", "name": "Bo", "aura": 4}], "actions": []}`)
	s.Require().True(s.store.ImportData(s.ctx, payload))

	// The stale player is gone locally and remotely; the remote tables
	// were cleared before the imported rows were replayed
	players := s.store.Players()
	s.Require().Len(players, 1)
	s.Equal("Bo", players[0].Name)
	s.Equal(resets+1, s.remote.Calls["ResetGame"])

	snap, err := s.remote.LoadSnapshot(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(snap.Players, 1)
	s.Equal("Bo", snap.Players[0].Name)
}

// Offline behavior tests

func (s *StoreSuite) TestRemoteFailureFlipsOffline() {
	s.remote.Err = errors.New("connection refused")

	player := s.store.AddPlayer(s.ctx, "Ana")

	// The local mutation still commits
	s.NotNil(s.store.Player(player.ID))
	s.False(s.store.Connected())
}

func (s *StoreSuite) TestNoRemoteCallsWhileOffline() {
	s.remote.Err = errors.New("connection refused")
	s.store.AddPlayer(s.ctx, "Ana")
	s.Require().False(s.store.Connected())

	calls := s.remote.Calls["InsertPlayer"]
	s.store.AddPlayer(s.ctx, "Bo")
	s.Equal(calls, s.remote.Calls["InsertPlayer"])
}

func (s *StoreSuite) TestRefreshRestoresOnlineState() {
	s.remote.Err = errors.New("connection refused")
	s.store.AddPlayer(s.ctx, "Ana")
	s.Require().False(s.store.Connected())

	// Remote comes back holding its own state
	s.remote.Err = nil
	s.store.Refresh(s.ctx)

	s.True(s.store.Connected())
	// State is replaced by the remote snapshot, which never saw Ana
	s.Empty(s.store.Players())
}

func (s *StoreSuite) TestLoadFallsBackToDeviceStorage() {
	ana := s.store.AddPlayer(s.ctx, "Ana")
	s.store.ChangeAura(s.ctx, ana.ID, 4, "")

	// A fresh store against an unreachable remote restores from disk
	s.remote.Err = errors.New("connection refused")
	fresh := New(s.remote, s.local, storage.NewHealth(s.remote, testutil.NopLogger()), s.clock, testutil.NopLogger())
	fresh.Load(s.ctx)

	s.False(fresh.Connected())
	players := fresh.Players()
	s.Require().Len(players, 1)
	s.Equal(4, players[0].Aura)
}

func (s *StoreSuite) TestLoadPrefersRemoteWhenOnline() {
	// Device storage has one player, remote has another
	s.store.AddPlayer(s.ctx, "Ana")
	s.Require().NoError(s.remote.Inner.ResetGame(s.ctx))
	s.Require().NoError(s.remote.Inner.InsertPlayer(s.ctx, &model.Player{ID: "p-remote", Name: "Remote"}))

	fresh := New(s.remote, s.local, storage.NewHealth(s.remote, testutil.NopLogger()), s.clock, testutil.NopLogger())
	fresh.Load(s.ctx)

	players := fresh.Players()
	s.Require().Len(players, 1)
	s.Equal("Remote", players[0].Name)
}

// Snapshot tests

func (s *StoreSuite) TestLoadFromSnapshotDoesNotPersist() {
	ana := s.store.AddPlayer(s.ctx, "Ana")

	s.store.LoadFromSnapshot(model.EmptySnapshot())
	s.Empty(s.store.Players())

	// Device storage still holds the previous state
	snap := s.local.LoadSnapshot()
	s.Require().Len(snap.Players, 1)
	s.Equal(ana.ID, snap.Players[0].ID)
}

func (s *StoreSuite) TestSnapshotIsACopy() {
	ana := s.store.AddPlayer(s.ctx, "Ana")

	snap := s.store.Snapshot()
	snap.Players[0].Aura = 99

	s.Equal(0, s.store.Player(ana.ID).Aura)
}
