package match

import (
	"time"

	"gorm.io/gorm"

	"github.com/pitchside/pitchside/internal/models"
	"github.com/pitchside/pitchside/internal/scoring"
)

// MatchStage places a fixture in the tournament format: round-robin group
// play followed by the knockout rounds.
type MatchStage string

const (
	StageGroup     MatchStage = "group"
	StageSemifinal MatchStage = "semifinal"
	StageFinal     MatchStage = "final"
)

// AllowsPairing reports whether two teams may meet at this stage given their
// group assignments. Group fixtures must stay inside one group; a team not
// yet drawn into a group may play anyone. Knockout stages cross groups.
func (s MatchStage) AllowsPairing(group1, group2 string) bool {
	if s != StageGroup {
		return true
	}
	return group1 == "" || group2 == "" || group1 == group2
}

// Match schedules two tournament teams against each other. The live scoring
// state lives in the ScoringState JSONB column as a single document; the
// scoring engine is the only writer of that document. ScoringVersion guards
// concurrent saves: every successful save increments it, and a save carrying
// a stale version is rejected.
type Match struct {
	gorm.Model
	TournamentID uint `json:"tournament_id" gorm:"index;not null"`
	Team1ID      uint `json:"team1_id" gorm:"index;not null"`
	Team2ID      uint `json:"team2_id" gorm:"index;not null"`

	Stage       MatchStage `json:"stage" gorm:"index;default:'group'"`
	ScheduledAt time.Time  `json:"scheduled_at" gorm:"index"`
	Venue       string     `json:"venue"`
	MatchNumber int        `json:"match_number"`

	// ScorerID is the operator allowed to record deliveries for this match.
	ScorerID *uint `json:"scorer_id,omitempty" gorm:"index"`

	Status         scoring.Status `json:"status" gorm:"index;default:'upcoming'"`
	ScoringState   models.JSONB   `json:"scoring_state,omitempty" gorm:"type:jsonb"`
	ScoringVersion int            `json:"scoring_version" gorm:"default:0"`
	Result         string         `json:"result,omitempty"`
}

type CreateMatchRequest struct {
	TournamentID uint       `json:"tournament_id" binding:"required"`
	Team1ID      uint       `json:"team1_id" binding:"required"`
	Team2ID      uint       `json:"team2_id" binding:"required"`
	Stage        MatchStage `json:"stage" binding:"omitempty,oneof=group semifinal final"`
	ScheduledAt  time.Time  `json:"scheduled_at" binding:"required"`
	Venue        string     `json:"venue" binding:"max=200"`
	MatchNumber  int        `json:"match_number" binding:"omitempty,min=1"`
}

type AssignScorerRequest struct {
	ScorerID uint `json:"scorer_id" binding:"required"`
}

type TossRequest struct {
	WinnerTeamID uint                 `json:"winner_team_id" binding:"required"`
	Decision     scoring.TossDecision `json:"decision" binding:"required,oneof=bat bowl"`
}

type SelectPlayersRequest struct {
	StrikerID    uint `json:"striker_id" binding:"required"`
	NonStrikerID uint `json:"non_striker_id" binding:"required"`
	BowlerID     uint `json:"bowler_id" binding:"required"`
}

type BallRequest struct {
	Runs int `json:"runs" binding:"min=0,max=6"`
}

type ExtraRequest struct {
	Type scoring.ExtraType `json:"type" binding:"required,oneof=wide no_ball bye leg_bye"`
	Runs int               `json:"runs" binding:"required,min=1,max=6"`
}

type WicketRequest struct {
	Dismissal scoring.DismissalType `json:"dismissal" binding:"required,oneof=bowled caught lbw run_out stumped hit_wicket"`
	BatsmanID uint                  `json:"batsman_id" binding:"required"`
}

type NewBatsmanRequest struct {
	BatsmanID uint `json:"batsman_id" binding:"required"`
}

type ChangeBowlerRequest struct {
	BowlerID uint `json:"bowler_id" binding:"required"`
}
