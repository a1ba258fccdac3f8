package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScorecard(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 2, MaxOversPerBowler: 1})
	require.NoError(t, s.RecordBall(4))
	require.NoError(t, s.RecordBall(1))
	require.NoError(t, s.RecordExtra(ExtraWide, 1))

	rosters := [2][]PlayerRef{
		{batA, batB, batC},
		{bwlX, bwlY, bwlZ},
	}
	card := BuildScorecard(s, rosters)

	require.Len(t, card.Innings, 1)
	inn := card.Innings[0]
	assert.Equal(t, "Lions", inn.Team)
	assert.Equal(t, 6, inn.Score.Runs)
	assert.InDelta(t, 18.0, inn.RunRate, 0.001) // 6 runs off 2 balls

	require.Len(t, inn.Batting, 2)
	assert.Equal(t, "Asha", inn.Batting[0].Player)
	assert.Equal(t, 5, inn.Batting[0].Runs)
	assert.Equal(t, 1, inn.Batting[0].Fours)
	// Binu is at the crease without having faced a ball yet.
	assert.Equal(t, "Binu", inn.Batting[1].Player)
	assert.Equal(t, 0, inn.Batting[1].Balls)

	require.Len(t, inn.Bowling, 1)
	assert.Equal(t, "Xavi", inn.Bowling[0].Player)
	assert.Equal(t, "0.2", inn.Bowling[0].Overs)
	assert.Equal(t, 6, inn.Bowling[0].RunsConceded)

	assert.Equal(t, []string{"4", "1", "wd1"}, card.CurrentOver)
}

func TestScorecardBeforeToss(t *testing.T) {
	s := NewState("Lions", "Tigers", Rules{OversPerInnings: 2, MaxOversPerBowler: 1})
	card := BuildScorecard(s, [2][]PlayerRef{})
	assert.Empty(t, card.Innings)
	assert.Equal(t, StatusUpcoming, card.Status)
}

func TestScorecardCoversBothInnings(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 1, MaxOversPerBowler: 1})
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(1))
	}
	require.NoError(t, s.StartSecondInnings())
	require.NoError(t, s.SelectOpeners(bwlX, bwlY, batA))
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(0))
	}
	require.Equal(t, StatusCompleted, s.Status)

	rosters := [2][]PlayerRef{
		{batA, batB, batC},
		{bwlX, bwlY, bwlZ},
	}
	card := BuildScorecard(s, rosters)
	require.Len(t, card.Innings, 2)
	assert.Equal(t, "Lions", card.Innings[0].Team)
	assert.Equal(t, "Tigers", card.Innings[1].Team)
	assert.Equal(t, 6, card.Innings[0].Score.Runs)
	assert.Equal(t, 0, card.Innings[1].Score.Runs)
	assert.Equal(t, "Lions won by 6 runs", card.Result)
}

func TestRunRate(t *testing.T) {
	assert.Zero(t, RunRate(InningsScore{}))
	assert.InDelta(t, 7.5, RunRate(InningsScore{Runs: 15, Balls: 12}), 0.001)
}
