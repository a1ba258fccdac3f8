package match

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pitchside/pitchside/internal/middleware"
	"github.com/pitchside/pitchside/internal/scoring"
	"github.com/pitchside/pitchside/internal/team"
	"github.com/pitchside/pitchside/internal/tournament"
	"github.com/pitchside/pitchside/internal/user"
	"github.com/pitchside/pitchside/pkg/responses"
)

// Broadcaster receives the encoded scoring snapshot after every committed
// state change. The live hub implements it.
type Broadcaster interface {
	Broadcast(matchID uint, payload []byte)
}

type ScoringDefaults struct {
	OversPerInnings   int
	MaxOversPerBowler int
}

type MatchController struct {
	repo           MatchRepository
	tournamentRepo tournament.TournamentRepository
	teamRepo       team.TeamRepository
	broadcaster    Broadcaster
	defaults       ScoringDefaults
}

func NewMatchController(repo MatchRepository, tournamentRepo tournament.TournamentRepository, teamRepo team.TeamRepository, broadcaster Broadcaster, defaults ScoringDefaults) *MatchController {
	return &MatchController{
		repo:           repo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		broadcaster:    broadcaster,
		defaults:       defaults,
	}
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// @Summary      Schedule a match
// @Tags         Matches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        match body CreateMatchRequest true "Match details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}
	if req.Team1ID == req.Team2ID {
		responses.BadRequest(c, "A match needs two different teams")
		return
	}

	t, err := mc.tournamentRepo.GetByID(req.TournamentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	team1, team2, ok := mc.loadTeams(c, req.Team1ID, req.Team2ID)
	if !ok {
		return
	}
	if team1.TournamentID != t.ID || team2.TournamentID != t.ID {
		responses.BadRequest(c, "Both teams must belong to the tournament")
		return
	}
	if !team1.MatchReady() || !team2.MatchReady() {
		responses.BadRequest(c, "Both teams need at least "+strconv.Itoa(team.MinPlayersForMatch)+" players")
		return
	}

	stage := req.Stage
	if stage == "" {
		stage = StageGroup
	}
	if !stage.AllowsPairing(team1.GroupName, team2.GroupName) {
		responses.BadRequest(c, "Group-stage matches must pair teams from the same group")
		return
	}

	rules := t.Rules(mc.defaults.OversPerInnings, mc.defaults.MaxOversPerBowler)
	state := scoring.NewState(team1.Name, team2.Name, rules)
	snapshot, err := scoring.EncodeState(state)
	if err != nil {
		responses.InternalServerError(c, "Failed to initialize scoring state")
		return
	}

	m := &Match{
		TournamentID: t.ID,
		Team1ID:      team1.ID,
		Team2ID:      team2.ID,
		Stage:        stage,
		ScheduledAt:  req.ScheduledAt,
		Venue:        req.Venue,
		MatchNumber:  req.MatchNumber,
		Status:       scoring.StatusUpcoming,
		ScoringState: snapshot,
	}
	if err := mc.repo.Create(m); err != nil {
		responses.InternalServerError(c, "Failed to create match")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match scheduled successfully", m)
}

// @Summary      List matches
// @Tags         Matches
// @Produce      json
// @Param        tournament_id query int false "Filter by tournament"
// @Param        status query string false "Filter by status"
// @Param        stage query string false "Filter by stage (group, semifinal, final)"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} responses.PaginatedResponse
// @Router       /matches [get]
func (mc *MatchController) ListMatches(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filters := map[string]interface{}{}
	if tournamentID := c.Query("tournament_id"); tournamentID != "" {
		filters["tournament_id"] = tournamentID
	}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if stage := c.Query("stage"); stage != "" {
		filters["stage"] = stage
	}

	matches, total, err := mc.repo.List(filters, page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "Failed to list matches")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", matches, total, page, pageSize)
}

// @Summary      Get match with live scoring state
// @Tags         Matches
// @Produce      json
// @Param        id path int true "Match ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatch(c *gin.Context) {
	m, ok := mc.loadMatch(c)
	if !ok {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", m)
}

// @Summary      Delete a match
// @Tags         Matches
// @Security     BearerAuth
// @Param        id path int true "Match ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	m, ok := mc.loadMatch(c)
	if !ok {
		return
	}
	if err := mc.repo.Delete(m.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete match")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match deleted successfully", nil)
}

// @Summary      Assign the scorer for a match
// @Tags         Matches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Match ID"
// @Param        scorer body AssignScorerRequest true "Scorer user ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/scorer [put]
func (mc *MatchController) AssignScorer(c *gin.Context) {
	m, ok := mc.loadMatch(c)
	if !ok {
		return
	}

	var req AssignScorerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	m.ScorerID = &req.ScorerID
	if err := mc.repo.Update(m); err != nil {
		responses.InternalServerError(c, "Failed to assign scorer")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Scorer assigned successfully", m)
}

// @Summary      Start the match (move to toss)
// @Tags         Scoring
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Match ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      409 {object} responses.ErrorResponse "Concurrent modification"
// @Router       /matches/{id}/start [post]
func (mc *MatchController) StartMatch(c *gin.Context) {
	mc.applyScoring(c, "Match started", func(m *Match, s *scoring.State) error {
		return s.StartMatch()
	})
}

// @Summary      Record the toss
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Match ID"
// @Param        toss body TossRequest true "Toss outcome"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/toss [post]
func (mc *MatchController) RecordToss(c *gin.Context) {
	var req TossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}
	mc.applyScoring(c, "Toss recorded", func(m *Match, s *scoring.State) error {
		winner, err := m.teamNumber(req.WinnerTeamID)
		if err != nil {
			return err
		}
		return s.RecordToss(winner, req.Decision)
	})
}

// @Summary      Select opening batsmen and bowler
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Match ID"
// @Param        players body SelectPlayersRequest true "Opening players"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/select-players [post]
func (mc *MatchController) SelectPlayers(c *gin.Context) {
	var req SelectPlayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}
	mc.applyScoring(c, "Players selected", func(m *Match, s *scoring.State) error {
		batting, bowling, err := mc.rostersFor(m, s)
		if err != nil {
			return err
		}
		striker := playerRef(batting, req.StrikerID)
		nonStriker := playerRef(batting, req.NonStrikerID)
		if striker == nil || nonStriker == nil {
			return errors.New("both batsmen must be on the batting team")
		}
		bowler := playerRef(bowling, req.BowlerID)
		if bowler == nil {
			return errors.New("bowler must be on the bowling team")
		}
		return s.SelectOpeners(*striker, *nonStriker, *bowler)
	})
}

// @Summary      Record a delivery
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Match ID"
// @Param        ball body BallRequest true "Runs off the bat"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Router       /matches/{id}/ball [post]
func (mc *MatchController) RecordBall(c *gin.Context) {
	var req BallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}
	mc.applyScoring(c, "Ball recorded", func(m *Match, s *scoring.State) error {
		return s.RecordBall(req.Runs)
	})
}

// @Summary      Record an extra delivery
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Match ID"
// @Param        extra body ExtraRequest true "Extra type and runs"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/extra [post]
func (mc *MatchController) RecordExtra(c *gin.Context) {
	var req ExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}
	mc.applyScoring(c, "Extra recorded", func(m *Match, s *scoring.State) error {
		return s.RecordExtra(req.Type, req.Runs)
	})
}

// @Summary      Record a wicket
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Match ID"
// @Param        wicket body WicketRequest true "Dismissal details"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/wicket [post]
func (mc *MatchController) RecordWicket(c *gin.Context) {
	var req WicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}
	mc.applyScoring(c, "Wicket recorded", func(m *Match, s *scoring.State) error {
		var batsman scoring.PlayerRef
		switch req.BatsmanID {
		case s.Striker.ID:
			batsman = s.Striker
		case s.NonStriker.ID:
			batsman = s.NonStriker
		default:
			return scoring.ErrBatsmanNotAtCrease
		}
		return s.RecordWicket(req.Dismissal, batsman)
	})
}

// @Summary      Select the replacement batsman
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Match ID"
// @Param        batsman body NewBatsmanRequest true "Incoming batsman"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/new-batsman [post]
func (mc *MatchController) SelectNewBatsman(c *gin.Context) {
	var req NewBatsmanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}
	mc.applyScoring(c, "Batsman selected", func(m *Match, s *scoring.State) error {
		batting, _, err := mc.rostersFor(m, s)
		if err != nil {
			return err
		}
		batsman := playerRef(batting, req.BatsmanID)
		if batsman == nil {
			return errors.New("batsman must be on the batting team")
		}
		return s.SelectNewBatsman(*batsman)
	})
}

// @Summary      Set the bowler for the next over
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Match ID"
// @Param        bowler body ChangeBowlerRequest true "Next bowler"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/change-bowler [post]
func (mc *MatchController) ChangeBowler(c *gin.Context) {
	var req ChangeBowlerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}
	mc.applyScoring(c, "Bowler changed", func(m *Match, s *scoring.State) error {
		_, bowling, err := mc.rostersFor(m, s)
		if err != nil {
			return err
		}
		bowler := playerRef(bowling, req.BowlerID)
		if bowler == nil {
			return errors.New("bowler must be on the bowling team")
		}
		return s.ChangeBowler(*bowler)
	})
}

// @Summary      List bowlers eligible for the next over
// @Tags         Scoring
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Match ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/eligible-bowlers [get]
func (mc *MatchController) EligibleBowlers(c *gin.Context) {
	m, ok := mc.loadMatch(c)
	if !ok {
		return
	}
	if !mc.authorizeOperator(c, m) {
		return
	}

	s, err := scoring.DecodeState(m.ScoringState)
	if err != nil {
		responses.InternalServerError(c, "Failed to decode scoring state")
		return
	}
	_, bowling, err := mc.rostersFor(m, s)
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	eligible, err := s.EligibleBowlers(bowling)
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", eligible)
}

// @Summary      Undo the last recorded delivery
// @Tags         Scoring
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Match ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/undo [post]
func (mc *MatchController) UndoLastBall(c *gin.Context) {
	mc.applyScoring(c, "Last ball undone", func(m *Match, s *scoring.State) error {
		return s.UndoLastBall()
	})
}

// @Summary      Start the second innings
// @Tags         Scoring
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Match ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/second-innings [post]
func (mc *MatchController) StartSecondInnings(c *gin.Context) {
	mc.applyScoring(c, "Second innings started", func(m *Match, s *scoring.State) error {
		return s.StartSecondInnings()
	})
}

// @Summary      Get the match scorecard
// @Tags         Matches
// @Produce      json
// @Param        id path int true "Match ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/scorecard [get]
func (mc *MatchController) GetScorecard(c *gin.Context) {
	m, ok := mc.loadMatch(c)
	if !ok {
		return
	}

	s, err := scoring.DecodeState(m.ScoringState)
	if err != nil {
		responses.InternalServerError(c, "Failed to decode scoring state")
		return
	}

	team1, team2, okTeams := mc.loadTeams(c, m.Team1ID, m.Team2ID)
	if !okTeams {
		return
	}
	rosters := [2][]scoring.PlayerRef{team.Refs(team1.Players), team.Refs(team2.Players)}
	responses.SendSuccess(c, http.StatusOK, "", scoring.BuildScorecard(s, rosters))
}

// applyScoring runs one engine operation inside the load, mutate, CAS-save
// cycle shared by every scoring endpoint, then broadcasts the new snapshot.
func (mc *MatchController) applyScoring(c *gin.Context, message string, op func(*Match, *scoring.State) error) {
	m, ok := mc.loadMatch(c)
	if !ok {
		return
	}
	if !mc.authorizeOperator(c, m) {
		return
	}

	s, err := scoring.DecodeState(m.ScoringState)
	if err != nil {
		responses.InternalServerError(c, "Failed to decode scoring state")
		return
	}

	if err := op(m, s); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	snapshot, err := scoring.EncodeState(s)
	if err != nil {
		responses.InternalServerError(c, "Failed to encode scoring state")
		return
	}

	err = mc.repo.SaveScoringState(m.ID, snapshot, s.Status, s.Result, m.ScoringVersion)
	if errors.Is(err, ErrVersionConflict) {
		responses.Conflict(c, "Scoring state changed concurrently, reload and retry")
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to save scoring state")
		return
	}

	if mc.broadcaster != nil {
		mc.broadcaster.Broadcast(m.ID, snapshot)
	}

	m.ScoringState = snapshot
	m.ScoringVersion++
	m.Status = s.Status
	m.Result = s.Result
	responses.SendSuccess(c, http.StatusOK, message, gin.H{"match": m, "state": s})
}

// authorizeOperator allows admins and the match's assigned scorer.
func (mc *MatchController) authorizeOperator(c *gin.Context, m *Match) bool {
	if c.GetString(middleware.AuthRoleKey) == user.RoleAdmin {
		return true
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return false
	}
	if m.ScorerID == nil || *m.ScorerID != userID {
		responses.Forbidden(c, "Only the assigned scorer can operate this match")
		return false
	}
	return true
}

func (mc *MatchController) loadMatch(c *gin.Context) (*Match, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return nil, false
	}

	m, err := mc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return nil, false
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return nil, false
	}
	return m, true
}

func (mc *MatchController) loadTeams(c *gin.Context, team1ID, team2ID uint) (*team.Team, *team.Team, bool) {
	team1, err := mc.teamRepo.GetByID(team1ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return nil, nil, false
	}
	team2, err := mc.teamRepo.GetByID(team2ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return nil, nil, false
	}
	if team1 == nil || team2 == nil {
		responses.NotFound(c, "Team")
		return nil, nil, false
	}
	return team1, team2, true
}

// rostersFor resolves the batting and bowling rosters from the engine's
// current batting order.
func (mc *MatchController) rostersFor(m *Match, s *scoring.State) (batting, bowling []scoring.PlayerRef, err error) {
	if s.BattingTeam != 1 && s.BattingTeam != 2 {
		return nil, nil, errors.New("batting order is not decided yet")
	}

	team1, err := mc.teamRepo.GetByID(m.Team1ID)
	if err != nil {
		return nil, nil, err
	}
	team2, err := mc.teamRepo.GetByID(m.Team2ID)
	if err != nil {
		return nil, nil, err
	}
	if team1 == nil || team2 == nil {
		return nil, nil, errors.New("team roster not found")
	}

	rosters := [2][]scoring.PlayerRef{team.Refs(team1.Players), team.Refs(team2.Players)}
	return rosters[s.BattingTeam-1], rosters[s.BowlingTeam()-1], nil
}

func playerRef(roster []scoring.PlayerRef, id uint) *scoring.PlayerRef {
	for i := range roster {
		if roster[i].ID == id {
			return &roster[i]
		}
	}
	return nil
}

// teamNumber maps a team's database ID to its position in the scoring state.
func (m *Match) teamNumber(teamID uint) (int, error) {
	switch teamID {
	case m.Team1ID:
		return 1, nil
	case m.Team2ID:
		return 2, nil
	default:
		return 0, errors.New("team is not playing in this match")
	}
}
