package scoring

import "fmt"

// BattingRow is one batsman's line on the scorecard.
type BattingRow struct {
	Player     string        `json:"player"`
	Runs       int           `json:"runs"`
	Balls      int           `json:"balls"`
	Fours      int           `json:"fours"`
	Sixes      int           `json:"sixes"`
	StrikeRate float64       `json:"strike_rate"`
	Out        bool          `json:"out"`
	Dismissal  DismissalType `json:"dismissal,omitempty"`
}

// BowlingRow is one bowler's line on the scorecard.
type BowlingRow struct {
	Player       string  `json:"player"`
	Overs        string  `json:"overs"` // "O.B"
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Economy      float64 `json:"economy"`
}

// InningsCard is one innings of the scorecard: the batting side's rows plus
// the opposing bowlers' figures.
type InningsCard struct {
	Innings int          `json:"innings"`
	Team    string       `json:"team"`
	Score   InningsScore `json:"score"`
	RunRate float64      `json:"run_rate"`
	Batting []BattingRow `json:"batting"`
	Bowling []BowlingRow `json:"bowling"`
}

// Scorecard is the read-only projection of a match's statistics.
type Scorecard struct {
	Status      Status        `json:"status"`
	Result      string        `json:"result,omitempty"`
	CurrentOver []string      `json:"current_over,omitempty"`
	Innings     []InningsCard `json:"innings"`
}

// RunRate is runs per over faced so far.
func RunRate(sc InningsScore) float64 {
	if sc.Balls == 0 {
		return 0
	}
	return float64(sc.Runs) / float64(sc.Balls) * 6
}

// BuildScorecard projects the state onto scorecard rows. Rosters are indexed
// by team number (rosters[0] is team 1) and define row order; players never
// involved in the match are omitted.
func BuildScorecard(s *State, rosters [2][]PlayerRef) Scorecard {
	card := Scorecard{
		Status:      s.Status,
		Result:      s.Result,
		CurrentOver: OverSummary(s),
	}
	if s.BattingTeam == 0 {
		return card
	}

	firstBatting := s.BattingTeam
	if s.CurrentInnings == 2 {
		firstBatting = 3 - s.BattingTeam
	}
	card.Innings = append(card.Innings, s.inningsCard(1, firstBatting, rosters))
	if s.CurrentInnings == 2 && s.Status != StatusInningsBreak {
		card.Innings = append(card.Innings, s.inningsCard(2, 3-firstBatting, rosters))
	}
	return card
}

func (s *State) inningsCard(innings, battingTeam int, rosters [2][]PlayerRef) InningsCard {
	card := InningsCard{
		Innings: innings,
		Team:    s.TeamNames[battingTeam-1],
		Score:   s.Teams[battingTeam-1],
		RunRate: RunRate(s.Teams[battingTeam-1]),
	}
	for _, p := range rosters[battingTeam-1] {
		st, ok := s.Stats[p.ID]
		if !ok || (st.BallsFaced == 0 && !s.atCrease(p.ID)) {
			continue
		}
		card.Batting = append(card.Batting, BattingRow{
			Player:     st.Name,
			Runs:       st.Runs,
			Balls:      st.BallsFaced,
			Fours:      st.Fours,
			Sixes:      st.Sixes,
			StrikeRate: st.StrikeRate,
			Out:        st.Out,
			Dismissal:  st.Dismissal,
		})
	}
	for _, p := range rosters[2-battingTeam] {
		st, ok := s.Stats[p.ID]
		if !ok || st.BallsBowled == 0 && st.RunsConceded == 0 {
			continue
		}
		card.Bowling = append(card.Bowling, BowlingRow{
			Player:       st.Name,
			Overs:        fmt.Sprintf("%d.%d", st.BallsBowled/6, st.BallsBowled%6),
			RunsConceded: st.RunsConceded,
			Wickets:      st.Wickets,
			Economy:      st.Economy,
		})
	}
	return card
}

func (s *State) atCrease(id uint) bool {
	return id != 0 && (s.Striker.ID == id || s.NonStriker.ID == id)
}

// OverSummary renders the last six deliveries as short display tokens, most
// recent last: "0".."6", "W", or the extra code ("wd1", "nb2", "b1", "lb4").
func OverSummary(s *State) []string {
	start := len(s.History) - 6
	if start < 0 {
		start = 0
	}
	var out []string
	for _, r := range s.History[start:] {
		out = append(out, ballToken(r))
	}
	return out
}

func ballToken(r BallRecord) string {
	switch {
	case r.IsWicket:
		return "W"
	case r.IsExtra:
		code := map[ExtraType]string{
			ExtraWide: "wd", ExtraNoBall: "nb", ExtraBye: "b", ExtraLegBye: "lb",
		}[r.ExtraType]
		return fmt.Sprintf("%s%d", code, r.Runs)
	default:
		return fmt.Sprintf("%d", r.Runs)
	}
}
