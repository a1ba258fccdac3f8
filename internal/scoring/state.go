package scoring

import "time"

// Status is the lifecycle state of a match.
type Status string

const (
	StatusUpcoming        Status = "upcoming"
	StatusToss            Status = "toss"
	StatusPlayerSelection Status = "player_selection"
	StatusLive            Status = "live"
	StatusInningsBreak    Status = "innings_break"
	StatusCompleted       Status = "completed"
)

// TossDecision is what the toss winner chose to do first.
type TossDecision string

const (
	DecisionBat  TossDecision = "bat"
	DecisionBowl TossDecision = "bowl"
)

// ExtraType classifies a delivery not fully credited to the striker.
type ExtraType string

const (
	ExtraWide   ExtraType = "wide"
	ExtraNoBall ExtraType = "no_ball"
	ExtraBye    ExtraType = "bye"
	ExtraLegBye ExtraType = "leg_bye"
)

// IsLegal reports whether the extra consumes a legal delivery. Wides and
// no-balls must be re-bowled; byes and leg-byes count toward the over.
func (e ExtraType) IsLegal() bool {
	return e == ExtraBye || e == ExtraLegBye
}

// DismissalType is one of the six supported dismissal kinds.
type DismissalType string

const (
	DismissalBowled    DismissalType = "bowled"
	DismissalCaught    DismissalType = "caught"
	DismissalLBW       DismissalType = "lbw"
	DismissalRunOut    DismissalType = "run_out"
	DismissalStumped   DismissalType = "stumped"
	DismissalHitWicket DismissalType = "hit_wicket"
)

var validDismissals = map[DismissalType]bool{
	DismissalBowled:    true,
	DismissalCaught:    true,
	DismissalLBW:       true,
	DismissalRunOut:    true,
	DismissalStumped:   true,
	DismissalHitWicket: true,
}

// PlayerRef is the lightweight player reference stored inside match state.
// The name is copied at selection time so roster edits never rewrite history.
type PlayerRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// InningsScore holds one team's running counters for its innings.
type InningsScore struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Balls   int `json:"balls"`
	Overs   int `json:"overs"`
}

// PlayerStat accumulates a player's batting and bowling figures. Entries are
// created lazily on first involvement and only ever mutated additively.
type PlayerStat struct {
	Name string `json:"name"`

	// Batting.
	Runs       int           `json:"runs"`
	BallsFaced int           `json:"balls_faced"`
	Fours      int           `json:"fours"`
	Sixes      int           `json:"sixes"`
	StrikeRate float64       `json:"strike_rate"`
	Out        bool          `json:"out"`
	Dismissal  DismissalType `json:"dismissal,omitempty"`

	// Bowling.
	Wickets      int     `json:"wickets"`
	BallsBowled  int     `json:"balls_bowled"`
	OversBowled  int     `json:"overs_bowled"`
	RunsConceded int     `json:"runs_conceded"`
	Economy      float64 `json:"economy"`
}

func (p *PlayerStat) refreshBatting() {
	if p.BallsFaced > 0 {
		p.StrikeRate = float64(p.Runs) / float64(p.BallsFaced) * 100
	}
}

func (p *PlayerStat) refreshBowling() {
	if p.BallsBowled > 0 {
		p.Economy = float64(p.RunsConceded) / (float64(p.BallsBowled) / 6)
	}
}

// BallRecord is one entry in the append-only delivery history.
type BallRecord struct {
	Over       string        `json:"over"` // "O.B" label, e.g. "3.4"
	Runs       int           `json:"runs"`
	Innings    int           `json:"innings"`
	IsExtra    bool          `json:"is_extra"`
	ExtraType  ExtraType     `json:"extra_type,omitempty"`
	IsWicket   bool          `json:"is_wicket"`
	Dismissal  DismissalType `json:"dismissal,omitempty"`
	Striker    PlayerRef     `json:"striker"`
	NonStriker PlayerRef     `json:"non_striker"`
	Bowler     PlayerRef     `json:"bowler"`
	Timestamp  time.Time     `json:"timestamp"`
}

// legal reports whether the record consumed a legal delivery.
func (b BallRecord) legal() bool {
	return !b.IsExtra || b.ExtraType.IsLegal()
}

// Rules are the per-match scoring parameters, resolved from the tournament
// settings (or service defaults) when the match is created.
type Rules struct {
	OversPerInnings   int `json:"overs_per_innings"`
	MaxOversPerBowler int `json:"max_overs_per_bowler"`
}

// State is the complete scoring state of a match. It is a plain value object:
// operations validate, then mutate in memory, and the caller decides how to
// persist the result. Nothing in this package touches storage.
type State struct {
	Status         Status          `json:"status"`
	CurrentInnings int             `json:"current_innings"` // 1 or 2
	BattingTeam    int             `json:"batting_team"`    // 1 or 2, 0 before toss
	TeamNames      [2]string       `json:"team_names"`
	Teams          [2]InningsScore `json:"teams"`
	TossWinner     int             `json:"toss_winner"`
	TossDecision   TossDecision    `json:"toss_decision,omitempty"`

	Striker        PlayerRef `json:"striker"`
	NonStriker     PlayerRef `json:"non_striker"`
	Bowler         PlayerRef `json:"bowler"`
	LastOverBowler PlayerRef `json:"last_over_bowler"`

	AwaitingBatsman bool `json:"awaiting_batsman"`
	AwaitingBowler  bool `json:"awaiting_bowler"`

	Stats   map[uint]*PlayerStat `json:"player_stats"`
	History []BallRecord         `json:"ball_history"`

	Rules  Rules  `json:"rules"`
	Result string `json:"result,omitempty"`
}

// NewState returns the pre-match state for two named teams.
func NewState(team1, team2 string, rules Rules) *State {
	return &State{
		Status:         StatusUpcoming,
		CurrentInnings: 1,
		TeamNames:      [2]string{team1, team2},
		Stats:          map[uint]*PlayerStat{},
		Rules:          rules,
	}
}

// Batting returns the innings counters of the team currently batting.
func (s *State) Batting() *InningsScore {
	return &s.Teams[s.BattingTeam-1]
}

// BowlingTeam returns the number (1|2) of the team currently bowling.
func (s *State) BowlingTeam() int {
	return 3 - s.BattingTeam
}

func (s *State) stat(p PlayerRef) *PlayerStat {
	if s.Stats == nil {
		s.Stats = map[uint]*PlayerStat{}
	}
	st, ok := s.Stats[p.ID]
	if !ok {
		st = &PlayerStat{Name: p.Name}
		s.Stats[p.ID] = st
	}
	return st
}
