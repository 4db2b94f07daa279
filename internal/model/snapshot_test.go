package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptySnapshotHasNonNilCollections(t *testing.T) {
	snap := EmptySnapshot()
	assert.NotNil(t, snap.Players)
	assert.NotNil(t, snap.Actions)
}

func TestCloneIsIndependent(t *testing.T) {
	snap := EmptySnapshot()
	snap.Players = append(snap.Players, Player{ID: "p1", Name: "Ana", Aura: 3})
	snap.Actions = append(snap.Actions, Action{ID: "a1", PlayerID: "p1", Change: 3})

	clone := snap.Clone()
	clone.Players[0].Aura = 99
	clone.Actions[0].Change = -1

	assert.Equal(t, 3, snap.Players[0].Aura)
	assert.Equal(t, 3, snap.Actions[0].Change)
}

func TestPlayerUpdateAppliesOnlySetFields(t *testing.T) {
	player := Player{ID: "p1", Name: "Ana", Aura: 5, Bio: "captain"}

	name := "Anastasia"
	PlayerUpdate{Name: &name}.Apply(&player)

	assert.Equal(t, "Anastasia", player.Name)
	assert.Equal(t, 5, player.Aura)
	assert.Equal(t, "captain", player.Bio)
}
