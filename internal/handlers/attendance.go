package handlers

import (
	"net/http"

	"github.com/jugal-ahir/ByteHackage/internal/middleware"
	"github.com/jugal-ahir/ByteHackage/internal/services"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

type UpdateAttendanceRequest struct {
	MemberID   string `json:"member_id" binding:"required"`
	Status     string `json:"status" binding:"required" example:"present"`
	RoomNumber string `json:"room_number"`
	TeamName   string `json:"team_name"`
}

type BulkUpdateRequest struct {
	RoomNumber string                    `json:"room_number" binding:"required"`
	Updates    []services.BulkTeamUpdate `json:"updates" binding:"required"`
}

// Update godoc
// @Summary      Update one member's attendance status
// @Description  Blocked members are rejected with 403
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request body UpdateAttendanceRequest true "Status change"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/attendance/update [post]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	member, err := h.attendanceService.UpdateMemberStatus(
		req.MemberID, req.Status, req.RoomNumber, req.TeamName, middleware.CurrentUser(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "member": member})
}

// BulkUpdate godoc
// @Summary      Quick-attendance bulk status update
// @Description  Best-effort: missing or blocked members are skipped with a per-item reason
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request body BulkUpdateRequest true "Batch of team/member updates"
// @Success      200 {object} map[string]interface{}
// @Router       /api/attendance/bulk-update [post]
func (h *AttendanceHandler) BulkUpdate(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	results, err := h.attendanceService.BulkUpdate(req.RoomNumber, req.Updates, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}
