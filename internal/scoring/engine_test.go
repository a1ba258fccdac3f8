package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	batA = PlayerRef{ID: 1, Name: "Asha"}
	batB = PlayerRef{ID: 2, Name: "Binu"}
	batC = PlayerRef{ID: 3, Name: "Chand"}
	bwlX = PlayerRef{ID: 11, Name: "Xavi"}
	bwlY = PlayerRef{ID: 12, Name: "Yuvi"}
	bwlZ = PlayerRef{ID: 13, Name: "Zane"}
)

func newLiveState(t *testing.T, rules Rules) *State {
	t.Helper()
	s := NewState("Lions", "Tigers", rules)
	require.NoError(t, s.StartMatch())
	require.NoError(t, s.RecordToss(1, DecisionBat))
	require.NoError(t, s.SelectOpeners(batA, batB, bwlX))
	return s
}

func TestLifecycleTransitions(t *testing.T) {
	s := NewState("Lions", "Tigers", Rules{OversPerInnings: 20, MaxOversPerBowler: 4})

	assert.ErrorIs(t, s.RecordToss(1, DecisionBat), ErrInvalidTransition)
	assert.ErrorIs(t, s.RecordBall(1), ErrInvalidTransition)

	require.NoError(t, s.StartMatch())
	assert.Equal(t, StatusToss, s.Status)
	assert.ErrorIs(t, s.StartMatch(), ErrInvalidTransition)

	assert.ErrorIs(t, s.RecordToss(3, DecisionBat), ErrInvalidToss)
	assert.ErrorIs(t, s.RecordToss(1, "field"), ErrInvalidToss)

	require.NoError(t, s.RecordToss(2, DecisionBowl))
	assert.Equal(t, StatusPlayerSelection, s.Status)
	// Winner chose to bowl, so team 1 bats first.
	assert.Equal(t, 1, s.BattingTeam)

	assert.ErrorIs(t, s.SelectOpeners(batA, batA, bwlX), ErrDuplicateBatsman)
	assert.ErrorIs(t, s.SelectOpeners(batA, PlayerRef{}, bwlX), ErrMissingPlayers)

	require.NoError(t, s.SelectOpeners(batA, batB, bwlX))
	assert.Equal(t, StatusLive, s.Status)
	assert.Len(t, s.Stats, 3)
}

func TestTossWinnerBatsFirst(t *testing.T) {
	s := NewState("Lions", "Tigers", Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	require.NoError(t, s.StartMatch())
	require.NoError(t, s.RecordToss(2, DecisionBat))
	assert.Equal(t, 2, s.BattingTeam)
}

func TestLegalBallCounters(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})

	require.NoError(t, s.RecordBall(4))
	sc := s.Batting()
	assert.Equal(t, 4, sc.Runs)
	assert.Equal(t, 1, sc.Balls)
	assert.Equal(t, 0, sc.Overs)

	bat := s.Stats[batA.ID]
	assert.Equal(t, 4, bat.Runs)
	assert.Equal(t, 1, bat.BallsFaced)
	assert.Equal(t, 1, bat.Fours)
	assert.InDelta(t, 400.0, bat.StrikeRate, 0.001)

	bwl := s.Stats[bwlX.ID]
	assert.Equal(t, 4, bwl.RunsConceded)
	assert.Equal(t, 1, bwl.BallsBowled)

	assert.ErrorIs(t, s.RecordBall(5), ErrInvalidRuns)
	assert.Len(t, s.History, 1)
	assert.Equal(t, "0.1", s.History[0].Over)
}

func TestWideAndNoBallDoNotCountAsDeliveries(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})

	require.NoError(t, s.RecordExtra(ExtraWide, 1))
	require.NoError(t, s.RecordExtra(ExtraNoBall, 2))

	sc := s.Batting()
	assert.Equal(t, 3, sc.Runs)
	assert.Equal(t, 0, sc.Balls)
	assert.Equal(t, 0, sc.Overs)

	// Striker is not credited and faces no ball.
	assert.Equal(t, 0, s.Stats[batA.ID].Runs)
	assert.Equal(t, 0, s.Stats[batA.ID].BallsFaced)
	// Bowler concedes the runs but is not charged a delivery.
	assert.Equal(t, 3, s.Stats[bwlX.ID].RunsConceded)
	assert.Equal(t, 0, s.Stats[bwlX.ID].BallsBowled)
	// No rotation on extras.
	assert.Equal(t, batA.ID, s.Striker.ID)

	assert.ErrorIs(t, s.RecordExtra(ExtraWide, 0), ErrInvalidExtra)
	assert.ErrorIs(t, s.RecordExtra("overthrow", 1), ErrInvalidExtra)
}

func TestByeIsALegalDeliveryCreditedToStriker(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})

	require.NoError(t, s.RecordExtra(ExtraBye, 1))
	sc := s.Batting()
	assert.Equal(t, 1, sc.Runs)
	assert.Equal(t, 1, sc.Balls)
	assert.Equal(t, 1, s.Stats[batA.ID].Runs)
	assert.Equal(t, 1, s.Stats[batA.ID].BallsFaced)
	assert.Equal(t, 1, s.Stats[bwlX.ID].BallsBowled)
	// Odd runs off a bye never rotate strike.
	assert.Equal(t, batA.ID, s.Striker.ID)
}

func TestOverOfDotBallsRotatesOnce(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(0))
	}
	assert.Equal(t, batB.ID, s.Striker.ID)
	assert.Equal(t, batA.ID, s.NonStriker.ID)
	assert.Equal(t, 1, s.Batting().Overs)
	assert.True(t, s.AwaitingBowler)
}

func TestSixSinglesReturnStrikeToOpener(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(1))
	}
	// Five odd-run rotations plus the dominant over-end rotation on the
	// sixth ball: net identity.
	assert.Equal(t, batA.ID, s.Striker.ID)
	assert.Equal(t, 6, s.Batting().Runs)
	assert.Equal(t, 6, s.Batting().Balls)
	assert.Equal(t, 1, s.Batting().Overs)
}

func TestOddRunsRotateMidOver(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	require.NoError(t, s.RecordBall(3))
	assert.Equal(t, batB.ID, s.Striker.ID)
	require.NoError(t, s.RecordBall(2))
	assert.Equal(t, batB.ID, s.Striker.ID)
}

func TestWicketBlocksScoringUntilReplacement(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})

	require.NoError(t, s.RecordWicket(DismissalBowled, batA))
	sc := s.Batting()
	assert.Equal(t, 1, sc.Wickets)
	assert.Equal(t, 1, sc.Balls)
	assert.Equal(t, 1, s.Stats[bwlX.ID].Wickets)
	assert.True(t, s.Stats[batA.ID].Out)

	assert.ErrorIs(t, s.RecordBall(1), ErrAwaitingBatsman)
	assert.ErrorIs(t, s.RecordExtra(ExtraWide, 1), ErrAwaitingBatsman)
	assert.ErrorIs(t, s.RecordWicket(DismissalCaught, batB), ErrAwaitingBatsman)

	// Mid-over wicket: the survivor keeps strike.
	require.NoError(t, s.SelectNewBatsman(batC))
	assert.Equal(t, batB.ID, s.Striker.ID)
	assert.Equal(t, batC.ID, s.NonStriker.ID)
	require.NoError(t, s.RecordBall(0))
}

func TestWicketOnFinalBallOfOverPutsNewBatsmanOnStrike(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordBall(0))
	}
	require.NoError(t, s.RecordWicket(DismissalCaught, batA))
	require.NoError(t, s.SelectNewBatsman(batC))
	assert.Equal(t, batC.ID, s.Striker.ID)
	assert.Equal(t, batB.ID, s.NonStriker.ID)
	assert.True(t, s.AwaitingBowler)
}

func TestWicketValidation(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	assert.ErrorIs(t, s.RecordWicket("retired", batA), ErrInvalidDismissal)
	assert.ErrorIs(t, s.RecordWicket(DismissalBowled, batC), ErrBatsmanNotAtCrease)

	require.NoError(t, s.RecordWicket(DismissalRunOut, batB))
	assert.ErrorIs(t, s.SelectNewBatsman(batA), ErrBatsmanUnavailable)
	assert.ErrorIs(t, s.SelectNewBatsman(batB), ErrBatsmanUnavailable)
	require.NoError(t, s.SelectNewBatsman(batC))
}

func TestBowlerChangeRequiredAfterOver(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(0))
	}
	require.True(t, s.AwaitingBowler)
	assert.ErrorIs(t, s.RecordBall(0), ErrAwaitingBowler)

	// The previous over's bowler may not bowl consecutive overs.
	assert.ErrorIs(t, s.ChangeBowler(bwlX), ErrIneligibleBowler)
	require.NoError(t, s.ChangeBowler(bwlY))
	require.NoError(t, s.RecordBall(0))
}

func TestBowlerQuota(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 1})
	roster := []PlayerRef{bwlX, bwlY, bwlZ}

	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(0))
	}
	// bwlX bowled its one allowed over: excluded by quota, not just by the
	// consecutive-over rule.
	eligible, err := s.EligibleBowlers(roster)
	require.NoError(t, err)
	require.Len(t, eligible, 2)
	for _, p := range eligible {
		assert.NotEqual(t, bwlX.ID, p.ID)
	}

	require.NoError(t, s.ChangeBowler(bwlY))
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(0))
	}
	eligible, err = s.EligibleBowlers(roster)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, bwlZ.ID, eligible[0].ID)
	assert.ErrorIs(t, s.ChangeBowler(bwlX), ErrIneligibleBowler)
}

func TestNoEligibleBowlerIsTerminal(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 1})

	// Two-bowler attack with a one-over quota: after the second over nobody
	// may legally bowl the third.
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(0))
	}
	require.NoError(t, s.ChangeBowler(bwlY))
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(0))
	}

	eligible, err := s.EligibleBowlers([]PlayerRef{bwlX, bwlY})
	assert.ErrorIs(t, err, ErrNoEligibleBowler)
	assert.Empty(t, eligible)
}

func TestInningsBreakAtOversCap(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 1, MaxOversPerBowler: 1})
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(1))
	}
	assert.Equal(t, StatusInningsBreak, s.Status)
	assert.Equal(t, 2, s.CurrentInnings)
	assert.Equal(t, 2, s.BattingTeam)
	assert.False(t, s.AwaitingBowler)
}

func TestAllOutEndsInnings(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 50, MaxOversPerBowler: 25})
	bowlers := []PlayerRef{bwlX, bwlY}
	nextID := uint(100)

	for w := 0; w < 10; w++ {
		require.NoError(t, s.RecordWicket(DismissalBowled, s.Striker))
		if s.Status != StatusLive {
			break
		}
		if s.AwaitingBatsman {
			require.NoError(t, s.SelectNewBatsman(PlayerRef{ID: nextID, Name: "Sub"}))
			nextID++
		}
		if s.AwaitingBowler {
			require.NoError(t, s.ChangeBowler(bowlers[(s.Batting().Balls/6)%2]))
		}
	}
	assert.Equal(t, 10, s.Teams[0].Wickets)
	assert.Equal(t, StatusInningsBreak, s.Status)
	assert.False(t, s.AwaitingBatsman)
}

func TestTwoOverInningsScenario(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 2, MaxOversPerBowler: 1})

	// Over 1: six singles.
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(1))
	}
	sc := s.Batting()
	assert.Equal(t, 6, sc.Runs)
	assert.Equal(t, 0, sc.Wickets)
	assert.Equal(t, 6, sc.Balls)
	assert.Equal(t, 1, sc.Overs)
	assert.Equal(t, batA.ID, s.Striker.ID)

	require.NoError(t, s.ChangeBowler(bwlY))

	// Over 2: 4, 6, three dots, then a wicket off the final ball.
	for _, runs := range []int{4, 6, 0, 0, 0} {
		require.NoError(t, s.RecordBall(runs))
	}
	require.NoError(t, s.RecordWicket(DismissalBowled, s.Striker))

	assert.Equal(t, 16, s.Teams[0].Runs)
	assert.Equal(t, 1, s.Teams[0].Wickets)
	assert.Equal(t, 12, s.Teams[0].Balls)
	assert.Equal(t, 2, s.Teams[0].Overs)
	assert.Equal(t, StatusInningsBreak, s.Status)
}

func TestSecondInningsAndResult(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 1, MaxOversPerBowler: 1})
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(1))
	}
	require.Equal(t, StatusInningsBreak, s.Status)

	assert.ErrorIs(t, s.RecordBall(1), ErrInvalidTransition)
	require.NoError(t, s.StartSecondInnings())
	assert.Equal(t, StatusPlayerSelection, s.Status)
	assert.Zero(t, s.Striker.ID)
	assert.Zero(t, s.Bowler.ID)

	// Team 2 chases 6 but manages only 4.
	require.NoError(t, s.SelectOpeners(bwlX, bwlY, batA))
	for _, runs := range []int{4, 0, 0, 0, 0, 0} {
		require.NoError(t, s.RecordBall(runs))
	}
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Equal(t, "Lions won by 2 runs", s.Result)
}

func TestChaseWinByWickets(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 1, MaxOversPerBowler: 1})
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(0))
	}
	require.NoError(t, s.StartSecondInnings())
	require.NoError(t, s.SelectOpeners(bwlX, bwlY, batA))
	for _, runs := range []int{6, 0, 0, 0, 0, 0} {
		require.NoError(t, s.RecordBall(runs))
	}
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Equal(t, "Tigers won by 10 wickets", s.Result)
}

func TestUndoRestoresTeamCountersButNotPlayerStats(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	require.NoError(t, s.RecordBall(0))
	before := *s.Batting()

	require.NoError(t, s.RecordBall(4))
	require.NoError(t, s.UndoLastBall())

	assert.Equal(t, before, *s.Batting())
	assert.Len(t, s.History, 1)
	// Known asymmetry: the striker and bowler keep the undone delivery in
	// their figures.
	assert.Equal(t, 4, s.Stats[batA.ID].Runs)
	assert.Equal(t, 2, s.Stats[batA.ID].BallsFaced)
	assert.Equal(t, 4, s.Stats[bwlX.ID].RunsConceded)
}

func TestUndoWicketRestoresBatsmen(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	require.NoError(t, s.RecordWicket(DismissalBowled, batA))
	require.True(t, s.AwaitingBatsman)

	require.NoError(t, s.UndoLastBall())
	assert.Equal(t, 0, s.Batting().Wickets)
	assert.Equal(t, 0, s.Batting().Balls)
	assert.False(t, s.AwaitingBatsman)
	assert.Equal(t, batA.ID, s.Striker.ID)
	assert.Equal(t, batB.ID, s.NonStriker.ID)
}

func TestUndoReopensOver(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	for i := 0; i < 6; i++ {
		require.NoError(t, s.RecordBall(0))
	}
	require.True(t, s.AwaitingBowler)

	require.NoError(t, s.UndoLastBall())
	assert.False(t, s.AwaitingBowler)
	assert.Equal(t, bwlX.ID, s.Bowler.ID)
	assert.Equal(t, 5, s.Batting().Balls)
}

func TestUndoWithEmptyHistory(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	assert.ErrorIs(t, s.UndoLastBall(), ErrNothingToUndo)
}

func TestWideAndUndoRoundTrip(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 20, MaxOversPerBowler: 4})
	before := *s.Batting()
	require.NoError(t, s.RecordExtra(ExtraWide, 1))
	require.NoError(t, s.UndoLastBall())
	assert.Equal(t, before, *s.Batting())
}
