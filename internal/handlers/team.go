package handlers

import (
	"net/http"

	"github.com/jugal-ahir/ByteHackage/internal/services"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// ListByClassroom godoc
// @Summary      Teams of a classroom with per-team attendance counts
// @Tags         teams
// @Produce      json
// @Param        roomNumber path string true "Room number"
// @Success      200 {array} services.TeamView
// @Failure      404 {object} ErrorResponse
// @Router       /api/teams/classroom/{roomNumber} [get]
func (h *TeamHandler) ListByClassroom(c *gin.Context) {
	views, err := h.teamService.ListByClassroom(c.Param("roomNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
