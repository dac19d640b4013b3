package handlers

import (
	"net/http"

	"github.com/jugal-ahir/ByteHackage/internal/middleware"
	"github.com/jugal-ahir/ByteHackage/internal/services"

	"github.com/gin-gonic/gin"
)

type EmergencyHandler struct {
	emergencyService *services.EmergencyService
}

func NewEmergencyHandler(emergencyService *services.EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{emergencyService: emergencyService}
}

type CreateEmergencyRequest struct {
	Type        string `json:"type" binding:"required" example:"medical"`
	RoomNumber  string `json:"room_number" binding:"required" example:"205"`
	TeamName    string `json:"team_name"`
	Description string `json:"description" binding:"required"`
}

// Create godoc
// @Summary      Report an emergency
// @Description  Broadcasts immediately; email notification is best-effort and reported in the response
// @Tags         emergency
// @Accept       json
// @Produce      json
// @Param        request body CreateEmergencyRequest true "Emergency"
// @Success      201 {object} map[string]interface{}
// @Router       /api/emergency [post]
func (h *EmergencyHandler) Create(c *gin.Context) {
	var req CreateEmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.emergencyService.Create(
		req.Type, req.RoomNumber, req.TeamName, req.Description, middleware.CurrentUser(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"success":       true,
		"emergency_log": result.Log,
		"email_sent":    result.EmailSent,
	}
	if result.EmailError != "" {
		response["email_error"] = result.EmailError
	}
	c.JSON(http.StatusCreated, response)
}

// List godoc
// @Summary      All emergency logs, newest first
// @Tags         emergency
// @Produce      json
// @Success      200 {array} models.EmergencyLog
// @Router       /api/emergency [get]
func (h *EmergencyHandler) List(c *gin.Context) {
	logs, err := h.emergencyService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Acknowledge godoc
// @Summary      Acknowledge an emergency (coordinator/organizer)
// @Tags         emergency
// @Produce      json
// @Param        id path string true "Emergency log ID"
// @Success      200 {object} models.EmergencyLog
// @Failure      404 {object} ErrorResponse
// @Router       /api/emergency/{id}/acknowledge [patch]
func (h *EmergencyHandler) Acknowledge(c *gin.Context) {
	emergencyLog, err := h.emergencyService.Acknowledge(c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emergencyLog)
}

// Delete godoc
// @Summary      Delete an emergency log (organizer only)
// @Tags         emergency
// @Produce      json
// @Param        id path string true "Emergency log ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/emergency/{id} [delete]
func (h *EmergencyHandler) Delete(c *gin.Context) {
	if err := h.emergencyService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "emergency log deleted"})
}
