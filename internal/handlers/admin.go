package handlers

import (
	"net/http"

	"github.com/jugal-ahir/ByteHackage/internal/middleware"
	"github.com/jugal-ahir/ByteHackage/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the organizer-only roster CRUD.
type AdminHandler struct {
	teamService *services.TeamService
}

func NewAdminHandler(teamService *services.TeamService) *AdminHandler {
	return &AdminHandler{teamService: teamService}
}

type CreateTeamRequest struct {
	TeamName string   `json:"team_name" binding:"required" example:"Alpha"`
	Members  []string `json:"members" binding:"required"`
}

type AddMemberRequest struct {
	Name string `json:"name" binding:"required" example:"Priya"`
}

// CreateTeam godoc
// @Summary      Add a team with its roster to a classroom
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        roomNumber path string true "Room number"
// @Param        request body CreateTeamRequest true "Team"
// @Success      201 {object} models.Team
// @Failure      404 {object} ErrorResponse
// @Router       /api/admin/rooms/{roomNumber}/teams [post]
func (h *AdminHandler) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(c.Param("roomNumber"), req.TeamName, req.Members, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "team": team})
}

// DeleteTeam godoc
// @Summary      Delete a team and its members
// @Tags         admin
// @Produce      json
// @Param        teamId path string true "Team ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/admin/teams/{teamId} [delete]
func (h *AdminHandler) DeleteTeam(c *gin.Context) {
	if err := h.teamService.DeleteTeam(c.Param("teamId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "team deleted"})
}

// AddMember godoc
// @Summary      Add a member to a team
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        teamId path string true "Team ID"
// @Param        request body AddMemberRequest true "Member"
// @Success      201 {object} models.Member
// @Failure      404 {object} ErrorResponse
// @Router       /api/admin/teams/{teamId}/members [post]
func (h *AdminHandler) AddMember(c *gin.Context) {
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	member, err := h.teamService.AddMember(c.Param("teamId"), req.Name, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "member": member})
}

// DeleteMember godoc
// @Summary      Remove a member from their team
// @Tags         admin
// @Produce      json
// @Param        memberId path string true "Member ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/admin/members/{memberId} [delete]
func (h *AdminHandler) DeleteMember(c *gin.Context) {
	if err := h.teamService.DeleteMember(c.Param("memberId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "member deleted"})
}
