package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlayerRowNullableColumns(t *testing.T) {
	img := "data:image/png;base64,xyz"
	row := playerRow{
		ID:           "p1",
		Name:         "Ana",
		Aura:         7,
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		ProfileImage: &img,
		Bio:          nil,
	}

	player := row.toModel()
	assert.Equal(t, "Ana", player.Name)
	assert.Equal(t, 7, player.Aura)
	assert.Equal(t, img, player.ProfileImage)
	assert.Empty(t, player.Bio)
}

func TestActionRowNilReason(t *testing.T) {
	row := actionRow{ID: "a1", PlayerID: "p1", PlayerName: "Ana", Change: -3}

	action := row.toModel()
	assert.Equal(t, -3, action.Change)
	assert.Empty(t, action.Reason)
}

func TestSessionRowHasEmptySnapshot(t *testing.T) {
	row := sessionRow{ID: "s1", Code: "1234", Name: "Friday night"}

	session := row.toModel()
	assert.NotNil(t, session.GameState.Players)
	assert.NotNil(t, session.GameState.Actions)
}

func TestNullableMapsEmptyToNil(t *testing.T) {
	assert.Nil(t, nullable(""))

	v := nullable("x")
	assert.NotNil(t, v)
	assert.Equal(t, "x", *v)
}
