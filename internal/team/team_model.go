package team

import (
	"gorm.io/gorm"

	"github.com/pitchside/pitchside/internal/scoring"
)

// MinPlayersForMatch is the roster size required before a team can be
// scheduled into a match.
const MinPlayersForMatch = 11

type PlayerRole string

const (
	RoleBatsman      PlayerRole = "Batsman"
	RoleBowler       PlayerRole = "Bowler"
	RoleAllRounder   PlayerRole = "All-rounder"
	RoleWicketKeeper PlayerRole = "Wicket-keeper"
)

// Team is a tournament entrant with its player roster. GroupName places the
// team in a group-stage pool; empty means not yet drawn into a group.
type Team struct {
	gorm.Model
	TournamentID uint     `json:"tournament_id" gorm:"index;not null"`
	Name         string   `json:"name" gorm:"not null"`
	GroupName    string   `json:"group_name" gorm:"index"`
	Players      []Player `json:"players"`
}

// Player identity is stable within a team. Matches store copies of player
// references, so deleting a player does not rewrite historical ball records.
type Player struct {
	gorm.Model
	TeamID       uint       `json:"team_id" gorm:"index;not null"`
	Name         string     `json:"name" gorm:"not null"`
	Role         PlayerRole `json:"role"`
	JerseyNumber int        `json:"jersey_number"`
}

// Ref returns the lightweight reference stored inside match state.
func (p *Player) Ref() scoring.PlayerRef {
	return scoring.PlayerRef{ID: p.ID, Name: p.Name}
}

// Refs converts a roster for handoff to the scoring engine.
func Refs(players []Player) []scoring.PlayerRef {
	out := make([]scoring.PlayerRef, 0, len(players))
	for i := range players {
		out = append(out, players[i].Ref())
	}
	return out
}

// MatchReady reports whether the roster is large enough to play.
func (t *Team) MatchReady() bool {
	return len(t.Players) >= MinPlayersForMatch
}

// JerseyTakenBy returns the player currently wearing the jersey number, or
// nil. excludeID skips one player, for updates.
func JerseyTakenBy(players []Player, jersey int, excludeID uint) *Player {
	for i := range players {
		if players[i].ID == excludeID {
			continue
		}
		if players[i].JerseyNumber == jersey {
			return &players[i]
		}
	}
	return nil
}

type CreateTeamRequest struct {
	TournamentID uint   `json:"tournament_id" binding:"required"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
}

type UpdateTeamRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=100"`
	GroupName *string `json:"group_name" binding:"omitempty,max=20"`
}

type AddPlayerRequest struct {
	Name         string     `json:"name" binding:"required,min=2,max=100"`
	Role         PlayerRole `json:"role" binding:"required,oneof=Batsman Bowler All-rounder Wicket-keeper"`
	JerseyNumber int        `json:"jersey_number" binding:"min=0,max=999"`
}

type UpdatePlayerRequest struct {
	Name         *string     `json:"name" binding:"omitempty,min=2,max=100"`
	Role         *PlayerRole `json:"role" binding:"omitempty,oneof=Batsman Bowler All-rounder Wicket-keeper"`
	JerseyNumber *int        `json:"jersey_number" binding:"omitempty,min=0,max=999"`
}
