package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func rosterOf(n int) []Player {
	players := make([]Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, Player{
			Model:        gorm.Model{ID: uint(i)},
			TeamID:       1,
			Name:         "Player",
			JerseyNumber: i,
		})
	}
	return players
}

func TestMatchReady(t *testing.T) {
	team := Team{Name: "Lions", Players: rosterOf(10)}
	assert.False(t, team.MatchReady())

	team.Players = rosterOf(11)
	assert.True(t, team.MatchReady())
}

func TestJerseyTakenBy(t *testing.T) {
	players := rosterOf(3)

	taken := JerseyTakenBy(players, 2, 0)
	assert.NotNil(t, taken)
	assert.Equal(t, uint(2), taken.ID)

	assert.Nil(t, JerseyTakenBy(players, 99, 0))

	// The wearer themselves is excluded when updating.
	assert.Nil(t, JerseyTakenBy(players, 2, 2))
	assert.NotNil(t, JerseyTakenBy(players, 2, 1))
}

func TestRefs(t *testing.T) {
	players := []Player{
		{Model: gorm.Model{ID: 7}, Name: "Asha"},
		{Model: gorm.Model{ID: 8}, Name: "Binu"},
	}

	refs := Refs(players)
	assert.Len(t, refs, 2)
	assert.Equal(t, uint(7), refs[0].ID)
	assert.Equal(t, "Asha", refs[0].Name)
	assert.Equal(t, "Binu", refs[1].Name)
}
