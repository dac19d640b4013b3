package handlers

import (
	"net/http"

	"github.com/jugal-ahir/ByteHackage/internal/middleware"
	"github.com/jugal-ahir/ByteHackage/internal/models"
	"github.com/jugal-ahir/ByteHackage/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"volunteer1"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type LoginResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	User  *models.User `json:"user"`
}

type SelectRoomRequest struct {
	RoomNumber *string `json:"room_number"`
}

// Login godoc
// @Summary      Login with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} LoginResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, User: user})
}

// Me godoc
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200 {object} models.User
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// SelectRoom godoc
// @Summary      Select the volunteer's current room
// @Description  A null room_number clears the selection
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SelectRoomRequest true "Room selection"
// @Success      200 {object} map[string]interface{}
// @Router       /api/auth/select-room [post]
func (h *AuthHandler) SelectRoom(c *gin.Context) {
	var req SelectRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.authService.SelectRoom(user, req.RoomNumber); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "current_room": user.CurrentRoom})
}
