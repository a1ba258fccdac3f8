package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := newLiveState(t, Rules{OversPerInnings: 2, MaxOversPerBowler: 1})
	require.NoError(t, s.RecordBall(4))
	require.NoError(t, s.RecordExtra(ExtraWide, 1))
	require.NoError(t, s.RecordWicket(DismissalCaught, batA))

	data, err := EncodeState(s)
	require.NoError(t, err)

	got, err := DecodeState(data)
	require.NoError(t, err)
	assert.Equal(t, s.Status, got.Status)
	assert.Equal(t, s.Teams, got.Teams)
	assert.Equal(t, s.Striker, got.Striker)
	assert.True(t, got.AwaitingBatsman)
	require.Len(t, got.History, 3)
	assert.Equal(t, s.History[2].Dismissal, got.History[2].Dismissal)
	assert.Equal(t, s.Stats[batA.ID].Runs, got.Stats[batA.ID].Runs)
}

func TestDecodeKeyedObjectHistory(t *testing.T) {
	// Older documents stored the ball history as an object keyed by
	// generated ids rather than an array.
	doc := []byte(`{
		"status": "live",
		"current_innings": 1,
		"batting_team": 1,
		"team_names": ["Lions", "Tigers"],
		"teams": [{"runs": 5, "wickets": 0, "balls": 2, "overs": 0}, {}],
		"ball_history": {
			"-Nb2": {"over": "0.2", "runs": 4, "innings": 1},
			"-Nb1": {"over": "0.1", "runs": 1, "innings": 1}
		},
		"player_stats": {"1": {"name": "Asha", "runs": 5, "balls_faced": 2}}
	}`)

	s, err := DecodeState(doc)
	require.NoError(t, err)
	require.Len(t, s.History, 2)
	// Records come back in key order.
	assert.Equal(t, "0.1", s.History[0].Over)
	assert.Equal(t, "0.2", s.History[1].Over)
	assert.Equal(t, 5, s.Stats[1].Runs)
	assert.Equal(t, StatusLive, s.Status)
}

func TestDecodeToleratesMissingFields(t *testing.T) {
	s, err := DecodeState([]byte(`{"team_names": ["Lions", "Tigers"]}`))
	require.NoError(t, err)
	assert.Equal(t, StatusUpcoming, s.Status)
	assert.Equal(t, 1, s.CurrentInnings)
	assert.NotNil(t, s.Stats)
	assert.Nil(t, s.History)
}

func TestDecodeRejectsMalformedHistory(t *testing.T) {
	_, err := DecodeState([]byte(`{"ball_history": "oops"}`))
	assert.Error(t, err)
}
