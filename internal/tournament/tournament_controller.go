package tournament

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pitchside/pitchside/internal/middleware"
	"github.com/pitchside/pitchside/pkg/responses"
)

type TournamentController struct {
	repo TournamentRepository
}

func NewTournamentController(repo TournamentRepository) *TournamentController {
	return &TournamentController{repo: repo}
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

// @Summary      Create tournament
// @Tags         Tournaments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        tournament body CreateTournamentRequest true "Tournament details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse "Name already in use"
// @Router       /tournaments [post]
func (tc *TournamentController) CreateTournament(c *gin.Context) {
	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		responses.BadRequest(c, "End date must be after start date")
		return
	}

	existing, err := tc.repo.GetByName(req.Name)
	if err != nil {
		responses.InternalServerError(c, "Failed to check tournament name")
		return
	}
	if existing != nil {
		responses.Conflict(c, "A tournament with this name already exists")
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	t := &Tournament{
		Name:              req.Name,
		Description:       req.Description,
		Status:            StatusRegistrationOpen,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		MaxTeams:          req.MaxTeams,
		OversPerInnings:   req.OversPerInnings,
		MaxOversPerBowler: req.MaxOversPerBowler,
		CreatedByID:       userID,
	}
	if t.MaxTeams == 0 {
		t.MaxTeams = 8
	}
	if err := tc.repo.Create(t); err != nil {
		responses.InternalServerError(c, "Failed to create tournament")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Tournament created successfully", t)
}

// @Summary      List tournaments
// @Tags         Tournaments
// @Produce      json
// @Param        status query string false "Filter by status"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} responses.PaginatedResponse
// @Router       /tournaments [get]
func (tc *TournamentController) ListTournaments(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filters := map[string]interface{}{}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}

	tournaments, total, err := tc.repo.List(filters, page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "Failed to list tournaments")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", tournaments, total, page, pageSize)
}

// @Summary      Get tournament
// @Tags         Tournaments
// @Produce      json
// @Param        id path int true "Tournament ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /tournaments/{id} [get]
func (tc *TournamentController) GetTournament(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return
	}

	t, err := tc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", t)
}

// @Summary      Update tournament
// @Tags         Tournaments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Tournament ID"
// @Param        tournament body UpdateTournamentRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /tournaments/{id} [put]
func (tc *TournamentController) UpdateTournament(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return
	}

	var req UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	t, err := tc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	if req.Name != nil {
		other, err := tc.repo.GetByName(*req.Name)
		if err != nil {
			responses.InternalServerError(c, "Failed to check tournament name")
			return
		}
		if other != nil && other.ID != t.ID {
			responses.Conflict(c, "A tournament with this name already exists")
			return
		}
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.StartDate != nil {
		t.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		t.EndDate = req.EndDate
	}
	if req.MaxTeams != nil {
		t.MaxTeams = *req.MaxTeams
	}
	// Scoring parameters are locked once play begins; matches already created
	// keep the rules they copied anyway.
	if t.Status == StatusRegistrationOpen || t.Status == StatusUpcoming {
		if req.OversPerInnings != nil {
			t.OversPerInnings = *req.OversPerInnings
		}
		if req.MaxOversPerBowler != nil {
			t.MaxOversPerBowler = *req.MaxOversPerBowler
		}
	} else if req.OversPerInnings != nil || req.MaxOversPerBowler != nil {
		responses.BadRequest(c, "Scoring settings cannot change after the tournament has started")
		return
	}

	if err := tc.repo.Update(t); err != nil {
		responses.InternalServerError(c, "Failed to update tournament")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tournament updated successfully", t)
}

// @Summary      Update tournament status
// @Tags         Tournaments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Tournament ID"
// @Param        status body UpdateStatusRequest true "New status"
// @Success      200 {object} responses.SuccessResponse
// @Router       /tournaments/{id}/status [patch]
func (tc *TournamentController) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	t, err := tc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	t.Status = req.Status
	if err := tc.repo.Update(t); err != nil {
		responses.InternalServerError(c, "Failed to update tournament status")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tournament status updated", t)
}

// @Summary      Delete tournament
// @Tags         Tournaments
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /tournaments/{id} [delete]
func (tc *TournamentController) DeleteTournament(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return
	}

	t, err := tc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	if err := tc.repo.Delete(t.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete tournament")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tournament deleted successfully", nil)
}
