package scoring

import "errors"

// Validation errors returned by engine operations. The HTTP layer maps these
// to 400 responses; state is never mutated when one of these is returned.
var (
	ErrInvalidTransition  = errors.New("action not allowed in current match state")
	ErrMissingPlayers     = errors.New("striker, non-striker and bowler must be set before scoring")
	ErrAwaitingBatsman    = errors.New("a replacement batsman must be selected before the next delivery")
	ErrAwaitingBowler     = errors.New("a new bowler must be selected before the next over")
	ErrInvalidRuns        = errors.New("invalid run value for a delivery")
	ErrInvalidExtra       = errors.New("invalid extra type or run value")
	ErrInvalidDismissal   = errors.New("invalid dismissal type")
	ErrInvalidToss        = errors.New("toss winner and decision are required")
	ErrDuplicateBatsman   = errors.New("opening batsmen must be two distinct players")
	ErrBatsmanNotAtCrease = errors.New("dismissed batsman is not at the crease")
	ErrBatsmanUnavailable = errors.New("selected batsman is out or already at the crease")
	ErrIneligibleBowler   = errors.New("bowler is not eligible for this over")
	ErrNoEligibleBowler   = errors.New("no eligible bowler available for the next over")
	ErrNothingToUndo      = errors.New("no deliveries recorded yet")
)
