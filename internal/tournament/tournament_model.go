package tournament

import (
	"time"

	"gorm.io/gorm"

	"github.com/pitchside/pitchside/internal/scoring"
)

type TournamentStatus string

const (
	StatusRegistrationOpen TournamentStatus = "registration_open"
	StatusUpcoming         TournamentStatus = "upcoming"
	StatusOngoing          TournamentStatus = "ongoing"
	StatusCompleted        TournamentStatus = "completed"
)

type Tournament struct {
	gorm.Model
	Name        string           `gorm:"uniqueIndex;not null" json:"name"`
	Description string           `json:"description"`
	Status      TournamentStatus `gorm:"default:registration_open" json:"status"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
	MaxTeams    int              `gorm:"default:8" json:"max_teams"`

	// Per-tournament scoring parameters; 0 means "use service defaults".
	OversPerInnings   int `json:"overs_per_innings"`
	MaxOversPerBowler int `json:"max_overs_per_bowler"`

	CreatedByID uint `json:"created_by_id"`
}

// Rules resolves the tournament's scoring parameters against the service
// defaults. Matches copy the resolved values at creation time.
func (t *Tournament) Rules(defaultOvers, defaultMaxPerBowler int) scoring.Rules {
	r := scoring.Rules{OversPerInnings: t.OversPerInnings, MaxOversPerBowler: t.MaxOversPerBowler}
	if r.OversPerInnings <= 0 {
		r.OversPerInnings = defaultOvers
	}
	if r.MaxOversPerBowler <= 0 {
		r.MaxOversPerBowler = defaultMaxPerBowler
	}
	return r
}

type CreateTournamentRequest struct {
	Name              string     `json:"name" binding:"required,min=3,max=100"`
	Description       string     `json:"description" binding:"max=2000"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	MaxTeams          int        `json:"max_teams" binding:"omitempty,min=2,max=64"`
	OversPerInnings   int        `json:"overs_per_innings" binding:"omitempty,min=1,max=50"`
	MaxOversPerBowler int        `json:"max_overs_per_bowler" binding:"omitempty,min=1,max=10"`
}

type UpdateTournamentRequest struct {
	Name              *string    `json:"name" binding:"omitempty,min=3,max=100"`
	Description       *string    `json:"description" binding:"omitempty,max=2000"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	MaxTeams          *int       `json:"max_teams" binding:"omitempty,min=2,max=64"`
	OversPerInnings   *int       `json:"overs_per_innings" binding:"omitempty,min=1,max=50"`
	MaxOversPerBowler *int       `json:"max_overs_per_bowler" binding:"omitempty,min=1,max=10"`
}

type UpdateStatusRequest struct {
	Status TournamentStatus `json:"status" binding:"required,oneof=registration_open upcoming ongoing completed"`
}
