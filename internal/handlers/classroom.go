package handlers

import (
	"net/http"

	"github.com/jugal-ahir/ByteHackage/internal/middleware"
	"github.com/jugal-ahir/ByteHackage/internal/services"

	"github.com/gin-gonic/gin"
)

type ClassroomHandler struct {
	classroomService *services.ClassroomService
	gateEntryService *services.GateEntryService
}

func NewClassroomHandler(classroomService *services.ClassroomService, gateEntryService *services.GateEntryService) *ClassroomHandler {
	return &ClassroomHandler{classroomService: classroomService, gateEntryService: gateEntryService}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"lunch"`
}

type GateEntryRequest struct {
	IsEntered        bool   `json:"is_entered"`
	VerificationType string `json:"verification_type" example:"Bonafide"`
}

type FinalizeEntryRequest struct {
	VerificationType string `json:"verification_type" example:"IDCard"`
}

// ListClassrooms godoc
// @Summary      All classrooms with derived attendance and gate counts
// @Tags         classrooms
// @Produce      json
// @Success      200 {array} services.ClassroomView
// @Router       /api/classrooms [get]
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	views, err := h.classroomService.ListClassrooms()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetClassroom godoc
// @Summary      One classroom with teams, members and active volunteers
// @Tags         classrooms
// @Produce      json
// @Param        roomNumber path string true "Room number"
// @Success      200 {object} services.ClassroomDetail
// @Failure      404 {object} ErrorResponse
// @Router       /api/classrooms/{roomNumber} [get]
func (h *ClassroomHandler) GetClassroom(c *gin.Context) {
	detail, err := h.classroomService.GetClassroom(c.Param("roomNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateStatus godoc
// @Summary      Update classroom status
// @Description  Emergency status additionally alerts the dashboard
// @Tags         classrooms
// @Accept       json
// @Produce      json
// @Param        roomNumber path string true "Room number"
// @Param        request body UpdateStatusRequest true "New status"
// @Success      200 {object} models.Classroom
// @Failure      404 {object} ErrorResponse
// @Router       /api/classrooms/{roomNumber}/status [post]
func (h *ClassroomHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	classroom, err := h.classroomService.UpdateStatus(c.Param("roomNumber"), req.Status, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classroom)
}

// SetTeamGateEntry godoc
// @Summary      Toggle a team's gate entry, cascading to all members
// @Tags         gate-entry
// @Accept       json
// @Produce      json
// @Param        roomNumber path string true "Room number"
// @Param        teamId path string true "Team ID"
// @Param        request body GateEntryRequest true "Gate entry state"
// @Success      200 {object} models.Team
// @Failure      404 {object} ErrorResponse
// @Router       /api/classrooms/{roomNumber}/teams/{teamId}/gate-entry [put]
func (h *ClassroomHandler) SetTeamGateEntry(c *gin.Context) {
	var req GateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	team, err := h.gateEntryService.SetTeamEntry(
		c.Param("roomNumber"), c.Param("teamId"),
		req.IsEntered, req.VerificationType, middleware.CurrentUser(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// SetMemberGateEntry godoc
// @Summary      Toggle one member's gate entry
// @Description  Team entry is re-derived as the AND over members
// @Tags         gate-entry
// @Accept       json
// @Produce      json
// @Param        roomNumber path string true "Room number"
// @Param        teamId path string true "Team ID"
// @Param        memberId path string true "Member ID"
// @Param        request body GateEntryRequest true "Gate entry state"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/classrooms/{roomNumber}/teams/{teamId}/members/{memberId}/gate-entry [put]
func (h *ClassroomHandler) SetMemberGateEntry(c *gin.Context) {
	var req GateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	member, team, err := h.gateEntryService.SetMemberEntry(
		c.Param("roomNumber"), c.Param("teamId"), c.Param("memberId"),
		req.IsEntered, req.VerificationType, middleware.CurrentUser(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member, "team_gate_entry": team.GateEntry})
}

// FinalizeTeamEntry godoc
// @Summary      Finalize a team's entry
// @Description  Marks the team entered and materializes member attendance from gate state
// @Tags         gate-entry
// @Accept       json
// @Produce      json
// @Param        roomNumber path string true "Room number"
// @Param        teamId path string true "Team ID"
// @Param        request body FinalizeEntryRequest true "Verification"
// @Success      200 {object} models.Team
// @Failure      404 {object} ErrorResponse
// @Router       /api/classrooms/{roomNumber}/teams/{teamId}/finalize-entry [put]
func (h *ClassroomHandler) FinalizeTeamEntry(c *gin.Context) {
	var req FinalizeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	team, err := h.gateEntryService.FinalizeTeamEntry(
		c.Param("roomNumber"), c.Param("teamId"),
		req.VerificationType, middleware.CurrentUser(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}
