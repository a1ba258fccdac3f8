package team

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pitchside/pitchside/internal/tournament"
	"github.com/pitchside/pitchside/pkg/responses"
)

type TeamController struct {
	repo           TeamRepository
	tournamentRepo tournament.TournamentRepository
}

func NewTeamController(repo TeamRepository, tournamentRepo tournament.TournamentRepository) *TeamController {
	return &TeamController{repo: repo, tournamentRepo: tournamentRepo}
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

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// @Summary      Register a team
// @Tags         Teams
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        team body CreateTeamRequest true "Team details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse "Name already taken in tournament"
// @Router       /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	t, err := tc.tournamentRepo.GetByID(req.TournamentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}
	if t.Status != tournament.StatusRegistrationOpen {
		responses.BadRequest(c, "Tournament is not open for registration")
		return
	}

	count, err := tc.tournamentRepo.CountTeams(t.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to count teams")
		return
	}
	if count >= int64(t.MaxTeams) {
		responses.BadRequest(c, "Tournament is full")
		return
	}

	existing, err := tc.repo.GetByTournamentAndName(t.ID, req.Name)
	if err != nil {
		responses.InternalServerError(c, "Failed to check team name")
		return
	}
	if existing != nil {
		responses.Conflict(c, "A team with this name already exists in the tournament")
		return
	}

	team := &Team{TournamentID: t.ID, Name: req.Name}
	if err := tc.repo.Create(team); err != nil {
		responses.InternalServerError(c, "Failed to create team")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", team)
}

// @Summary      List teams in a tournament
// @Tags         Teams
// @Produce      json
// @Param        tournament_id query int true "Tournament ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} responses.PaginatedResponse
// @Router       /teams [get]
func (tc *TeamController) ListTeams(c *gin.Context) {
	tournamentID, err := strconv.ParseUint(c.Query("tournament_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "tournament_id query parameter is required")
		return
	}
	page, pageSize := parsePagination(c)

	teams, total, err := tc.repo.ListByTournament(uint(tournamentID), page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "Failed to list teams")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", teams, total, page, pageSize)
}

// @Summary      Get team with roster
// @Tags         Teams
// @Produce      json
// @Param        id path int true "Team ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /teams/{id} [get]
func (tc *TeamController) GetTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	team, err := tc.repo.GetByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", team)
}

// @Summary      Update a team (name, group assignment)
// @Tags         Teams
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Team ID"
// @Param        team body UpdateTeamRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse
// @Router       /teams/{id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	team, err := tc.repo.GetByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}

	if req.Name != nil {
		other, err := tc.repo.GetByTournamentAndName(team.TournamentID, *req.Name)
		if err != nil {
			responses.InternalServerError(c, "Failed to check team name")
			return
		}
		if other != nil && other.ID != team.ID {
			responses.Conflict(c, "A team with this name already exists in the tournament")
			return
		}
		team.Name = *req.Name
	}
	if req.GroupName != nil {
		team.GroupName = *req.GroupName
	}

	if err := tc.repo.Update(team); err != nil {
		responses.InternalServerError(c, "Failed to update team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", team)
}

// @Summary      Delete a team
// @Tags         Teams
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /teams/{id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	team, err := tc.repo.GetByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}

	if err := tc.repo.Delete(team.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted successfully", nil)
}

// @Summary      Add a player to a team
// @Tags         Teams
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Team ID"
// @Param        player body AddPlayerRequest true "Player details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      409 {object} responses.ErrorResponse "Jersey number taken"
// @Router       /teams/{id}/players [post]
func (tc *TeamController) AddPlayer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	team, err := tc.repo.GetByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}

	if req.JerseyNumber > 0 {
		if taken := JerseyTakenBy(team.Players, req.JerseyNumber, 0); taken != nil {
			responses.Conflict(c, "Jersey number "+strconv.Itoa(req.JerseyNumber)+" is already worn by "+taken.Name)
			return
		}
	}

	player := &Player{
		TeamID:       team.ID,
		Name:         req.Name,
		Role:         req.Role,
		JerseyNumber: req.JerseyNumber,
	}
	if err := tc.repo.AddPlayer(player); err != nil {
		responses.InternalServerError(c, "Failed to add player")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Player added successfully", player)
}

// @Summary      Update a player
// @Tags         Teams
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Team ID"
// @Param        playerId path int true "Player ID"
// @Param        player body UpdatePlayerRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse
// @Router       /teams/{id}/players/{playerId} [put]
func (tc *TeamController) UpdatePlayer(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	playerID, ok := parseIDParam(c, "playerId")
	if !ok {
		return
	}

	var req UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	team, err := tc.repo.GetByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}

	player, err := tc.repo.GetPlayer(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return
	}
	if player == nil || player.TeamID != team.ID {
		responses.NotFound(c, "Player")
		return
	}

	if req.Name != nil {
		player.Name = *req.Name
	}
	if req.Role != nil {
		player.Role = *req.Role
	}
	if req.JerseyNumber != nil {
		if *req.JerseyNumber > 0 {
			if taken := JerseyTakenBy(team.Players, *req.JerseyNumber, player.ID); taken != nil {
				responses.Conflict(c, "Jersey number "+strconv.Itoa(*req.JerseyNumber)+" is already worn by "+taken.Name)
				return
			}
		}
		player.JerseyNumber = *req.JerseyNumber
	}

	if err := tc.repo.UpdatePlayer(player); err != nil {
		responses.InternalServerError(c, "Failed to update player")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player updated successfully", player)
}

// @Summary      Remove a player from a team
// @Tags         Teams
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Param        playerId path int true "Player ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /teams/{id}/players/{playerId} [delete]
func (tc *TeamController) RemovePlayer(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	playerID, ok := parseIDParam(c, "playerId")
	if !ok {
		return
	}

	player, err := tc.repo.GetPlayer(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return
	}
	if player == nil || player.TeamID != teamID {
		responses.NotFound(c, "Player")
		return
	}

	if err := tc.repo.RemovePlayer(player.ID); err != nil {
		responses.InternalServerError(c, "Failed to remove player")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player removed successfully", nil)
}
