package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageAllowsPairing(t *testing.T) {
	// Group fixtures stay inside one pool.
	assert.True(t, StageGroup.AllowsPairing("A", "A"))
	assert.False(t, StageGroup.AllowsPairing("A", "B"))

	// Teams not yet drawn into a group may be scheduled freely.
	assert.True(t, StageGroup.AllowsPairing("", "B"))
	assert.True(t, StageGroup.AllowsPairing("A", ""))

	// Knockout rounds cross groups.
	assert.True(t, StageSemifinal.AllowsPairing("A", "B"))
	assert.True(t, StageFinal.AllowsPairing("A", "B"))
}

func TestTeamNumber(t *testing.T) {
	m := &Match{Team1ID: 5, Team2ID: 9}

	n, err := m.teamNumber(5)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = m.teamNumber(9)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = m.teamNumber(42)
	assert.Error(t, err)
}
