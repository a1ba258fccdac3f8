package scoring

import (
	"fmt"
	"time"
)

// validRuns are the run values an operator can record off the bat.
var validRuns = map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 6: true}

// StartMatch moves an upcoming match to the toss stage.
func (s *State) StartMatch() error {
	if s.Status != StatusUpcoming {
		return ErrInvalidTransition
	}
	s.Status = StatusToss
	return nil
}

// RecordToss stores the toss outcome and derives the batting order: the
// winner bats first when it elected to bat, otherwise the other team does.
func (s *State) RecordToss(winner int, decision TossDecision) error {
	if s.Status != StatusToss {
		return ErrInvalidTransition
	}
	if winner != 1 && winner != 2 {
		return ErrInvalidToss
	}
	if decision != DecisionBat && decision != DecisionBowl {
		return ErrInvalidToss
	}
	s.TossWinner = winner
	s.TossDecision = decision
	if decision == DecisionBat {
		s.BattingTeam = winner
	} else {
		s.BattingTeam = 3 - winner
	}
	s.Status = StatusPlayerSelection
	return nil
}

// SelectOpeners sets the two opening batsmen and the opening bowler and puts
// the innings live. Stats entries are seeded for all three players.
func (s *State) SelectOpeners(striker, nonStriker, bowler PlayerRef) error {
	if s.Status != StatusPlayerSelection {
		return ErrInvalidTransition
	}
	if striker.ID == 0 || nonStriker.ID == 0 || bowler.ID == 0 {
		return ErrMissingPlayers
	}
	if striker.ID == nonStriker.ID {
		return ErrDuplicateBatsman
	}
	s.Striker = striker
	s.NonStriker = nonStriker
	s.Bowler = bowler
	s.stat(striker)
	s.stat(nonStriker)
	s.stat(bowler)
	s.Status = StatusLive
	return nil
}

// RecordBall processes a legal, non-extra delivery scoring the given runs.
func (s *State) RecordBall(runs int) error {
	if err := s.readyToScore(); err != nil {
		return err
	}
	if !validRuns[runs] {
		return ErrInvalidRuns
	}

	label := s.nextBallLabel()
	sc := s.Batting()
	sc.Balls++
	sc.Overs = sc.Balls / 6
	sc.Runs += runs

	bat := s.stat(s.Striker)
	bat.Runs += runs
	bat.BallsFaced++
	switch runs {
	case 4:
		bat.Fours++
	case 6:
		bat.Sixes++
	}
	bat.refreshBatting()
	s.creditBowlerBall(runs)

	s.appendRecord(BallRecord{
		Over:       label,
		Runs:       runs,
		Innings:    s.CurrentInnings,
		Striker:    s.Striker,
		NonStriker: s.NonStriker,
		Bowler:     s.Bowler,
	})

	s.rotateStrike(sc.Balls%6 == 0, runs%2 == 1)
	s.afterLegalDelivery(sc)
	return nil
}

// RecordExtra processes a wide, no-ball, bye or leg-bye worth the given runs.
// Wides and no-balls do not consume a legal delivery and touch only the team
// score and the bowler's conceded runs. Byes and leg-byes are legal
// deliveries credited to the striker, but never rotate strike on runs.
func (s *State) RecordExtra(extra ExtraType, runs int) error {
	if err := s.readyToScore(); err != nil {
		return err
	}
	switch extra {
	case ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye:
	default:
		return ErrInvalidExtra
	}
	if runs < 1 || runs > 6 {
		return ErrInvalidExtra
	}

	legal := extra.IsLegal()
	label := s.nextBallLabel()
	sc := s.Batting()
	sc.Runs += runs
	if legal {
		sc.Balls++
		sc.Overs = sc.Balls / 6

		bat := s.stat(s.Striker)
		bat.Runs += runs
		bat.BallsFaced++
		bat.refreshBatting()
		s.creditBowlerBall(runs)
	} else {
		bwl := s.stat(s.Bowler)
		bwl.RunsConceded += runs
		bwl.refreshBowling()
	}

	s.appendRecord(BallRecord{
		Over:       label,
		Runs:       runs,
		Innings:    s.CurrentInnings,
		IsExtra:    true,
		ExtraType:  extra,
		Striker:    s.Striker,
		NonStriker: s.NonStriker,
		Bowler:     s.Bowler,
	})

	if legal {
		s.rotateStrike(sc.Balls%6 == 0, false)
		s.afterLegalDelivery(sc)
	}
	return nil
}

// RecordWicket processes a dismissal. The wicket consumes a legal delivery
// and blocks further scoring until a replacement batsman is selected, unless
// it ends the innings outright.
func (s *State) RecordWicket(dismissal DismissalType, batsman PlayerRef) error {
	if err := s.readyToScore(); err != nil {
		return err
	}
	if !validDismissals[dismissal] {
		return ErrInvalidDismissal
	}
	if batsman.ID != s.Striker.ID && batsman.ID != s.NonStriker.ID {
		return ErrBatsmanNotAtCrease
	}

	label := s.nextBallLabel()
	sc := s.Batting()
	sc.Balls++
	sc.Overs = sc.Balls / 6
	sc.Wickets++

	out := s.stat(batsman)
	out.BallsFaced++
	out.Out = true
	out.Dismissal = dismissal
	out.refreshBatting()

	bwl := s.stat(s.Bowler)
	bwl.Wickets++
	bwl.BallsBowled++
	if bwl.BallsBowled%6 == 0 {
		bwl.OversBowled++
	}
	bwl.refreshBowling()

	s.appendRecord(BallRecord{
		Over:       label,
		Innings:    s.CurrentInnings,
		IsWicket:   true,
		Dismissal:  dismissal,
		Striker:    s.Striker,
		NonStriker: s.NonStriker,
		Bowler:     s.Bowler,
	})

	// The survivor moves to strike unless the over just ended; placement of
	// the incoming batsman happens in SelectNewBatsman.
	if batsman.ID == s.Striker.ID {
		s.Striker = PlayerRef{}
	} else {
		s.NonStriker = PlayerRef{}
	}
	s.AwaitingBatsman = true
	s.afterLegalDelivery(sc)
	return nil
}

// SelectNewBatsman places the replacement batsman after a wicket. If the
// wicket fell on the final ball of an over the new batsman takes strike;
// otherwise the surviving batsman keeps strike.
func (s *State) SelectNewBatsman(batsman PlayerRef) error {
	if s.Status != StatusLive || !s.AwaitingBatsman {
		return ErrInvalidTransition
	}
	if batsman.ID == 0 {
		return ErrMissingPlayers
	}
	if batsman.ID == s.Striker.ID || batsman.ID == s.NonStriker.ID {
		return ErrBatsmanUnavailable
	}
	if st, ok := s.Stats[batsman.ID]; ok && st.Out {
		return ErrBatsmanUnavailable
	}

	survivor := s.Striker
	if survivor.ID == 0 {
		survivor = s.NonStriker
	}
	if s.Batting().Balls%6 == 0 && s.Batting().Balls > 0 {
		s.Striker = batsman
		s.NonStriker = survivor
	} else {
		s.Striker = survivor
		s.NonStriker = batsman
	}
	s.stat(batsman)
	s.AwaitingBatsman = false
	return nil
}

// EligibleBowlers filters the bowling roster down to players allowed to bowl
// the next over: not the previous over's bowler and under the overs quota.
// An empty result is terminal, play cannot legally continue, so it is
// reported as ErrNoEligibleBowler rather than an empty slice.
func (s *State) EligibleBowlers(roster []PlayerRef) ([]PlayerRef, error) {
	var out []PlayerRef
	for _, p := range roster {
		if p.ID == s.LastOverBowler.ID {
			continue
		}
		if st, ok := s.Stats[p.ID]; ok && st.OversBowled >= s.Rules.MaxOversPerBowler {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrNoEligibleBowler
	}
	return out, nil
}

// ChangeBowler sets the bowler for the next over.
func (s *State) ChangeBowler(bowler PlayerRef) error {
	if s.Status != StatusLive || !s.AwaitingBowler {
		return ErrInvalidTransition
	}
	if bowler.ID == 0 {
		return ErrMissingPlayers
	}
	if bowler.ID == s.LastOverBowler.ID {
		return ErrIneligibleBowler
	}
	if st, ok := s.Stats[bowler.ID]; ok && st.OversBowled >= s.Rules.MaxOversPerBowler {
		return ErrIneligibleBowler
	}
	s.Bowler = bowler
	s.stat(bowler)
	s.AwaitingBowler = false
	return nil
}

// UndoLastBall pops the most recent delivery and reverses the batting team's
// counters by its contribution. Player statistics are NOT reversed; undo is a
// best-effort rollback of the team totals only.
func (s *State) UndoLastBall() error {
	if s.Status != StatusLive {
		return ErrInvalidTransition
	}
	if len(s.History) == 0 {
		return ErrNothingToUndo
	}
	last := s.History[len(s.History)-1]
	if last.Innings != s.CurrentInnings {
		return ErrNothingToUndo
	}
	s.History = s.History[:len(s.History)-1]

	sc := s.Batting()
	sc.Runs -= last.Runs
	if last.legal() {
		sc.Balls--
		sc.Overs = sc.Balls / 6
		if s.AwaitingBowler && sc.Balls%6 != 0 {
			// The undone delivery had closed the over; reopen it.
			s.Bowler = last.Bowler
			s.AwaitingBowler = false
		}
	}
	if last.IsWicket {
		sc.Wickets--
		s.Striker = last.Striker
		s.NonStriker = last.NonStriker
		s.AwaitingBatsman = false
	}
	return nil
}

// StartSecondInnings leaves the innings break. The second innings always
// starts with a fresh opening selection.
func (s *State) StartSecondInnings() error {
	if s.Status != StatusInningsBreak {
		return ErrInvalidTransition
	}
	s.Striker = PlayerRef{}
	s.NonStriker = PlayerRef{}
	s.Bowler = PlayerRef{}
	s.LastOverBowler = PlayerRef{}
	s.AwaitingBatsman = false
	s.AwaitingBowler = false
	s.Status = StatusPlayerSelection
	return nil
}

// readyToScore guards every delivery-recording operation.
func (s *State) readyToScore() error {
	if s.Status != StatusLive {
		return ErrInvalidTransition
	}
	if s.AwaitingBatsman {
		return ErrAwaitingBatsman
	}
	if s.AwaitingBowler {
		return ErrAwaitingBowler
	}
	if s.Striker.ID == 0 || s.NonStriker.ID == 0 || s.Bowler.ID == 0 {
		return ErrMissingPlayers
	}
	return nil
}

// nextBallLabel renders the "O.B" label of the delivery about to be bowled.
// Wides and no-balls re-use the upcoming ball number.
func (s *State) nextBallLabel() string {
	balls := s.Batting().Balls + 1
	over := (balls - 1) / 6
	ball := (balls-1)%6 + 1
	return fmt.Sprintf("%d.%d", over, ball)
}

func (s *State) creditBowlerBall(runs int) {
	bwl := s.stat(s.Bowler)
	bwl.RunsConceded += runs
	bwl.BallsBowled++
	if bwl.BallsBowled%6 == 0 {
		bwl.OversBowled++
	}
	bwl.refreshBowling()
}

func (s *State) appendRecord(r BallRecord) {
	r.Timestamp = time.Now().UTC()
	s.History = append(s.History, r)
}

// rotateStrike applies at most one swap per delivery; over completion is
// dominant over the odd-run rule.
func (s *State) rotateStrike(overComplete, oddRuns bool) {
	if overComplete || oddRuns {
		s.Striker, s.NonStriker = s.NonStriker, s.Striker
	}
}

// afterLegalDelivery runs the over-end and innings-end checks shared by
// balls, legal extras and wickets.
func (s *State) afterLegalDelivery(sc *InningsScore) {
	if s.inningsOver(sc) {
		s.finishInnings()
		return
	}
	if sc.Balls > 0 && sc.Balls%6 == 0 {
		s.LastOverBowler = s.Bowler
		s.AwaitingBowler = true
	}
}

func (s *State) inningsOver(sc *InningsScore) bool {
	return sc.Overs >= s.Rules.OversPerInnings || sc.Wickets >= 10
}

func (s *State) finishInnings() {
	if s.CurrentInnings == 1 {
		s.CurrentInnings = 2
		s.BattingTeam = 3 - s.BattingTeam
		s.Status = StatusInningsBreak
		s.AwaitingBatsman = false
		s.AwaitingBowler = false
		return
	}
	s.Status = StatusCompleted
	s.AwaitingBatsman = false
	s.AwaitingBowler = false
	s.Result = s.computeResult()
}

// computeResult summarizes the finished match from the two innings totals.
// The team batting second at completion is s.BattingTeam.
func (s *State) computeResult() string {
	second := s.BattingTeam
	first := 3 - second
	fs := s.Teams[first-1]
	ss := s.Teams[second-1]
	switch {
	case ss.Runs > fs.Runs:
		return fmt.Sprintf("%s won by %d wickets", s.TeamNames[second-1], 10-ss.Wickets)
	case fs.Runs > ss.Runs:
		return fmt.Sprintf("%s won by %d runs", s.TeamNames[first-1], fs.Runs-ss.Runs)
	default:
		return "Match tied"
	}
}
