package handlers

import (
	"net/http"

	"github.com/jugal-ahir/ByteHackage/internal/middleware"
	"github.com/jugal-ahir/ByteHackage/internal/services"

	"github.com/gin-gonic/gin"
)

type IssueHandler struct {
	issueService *services.IssueService
}

func NewIssueHandler(issueService *services.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

type CreateIssueRequest struct {
	Category    string `json:"category" binding:"required" example:"technical"`
	Description string `json:"description" binding:"required"`
	RoomNumber  string `json:"room_number" binding:"required" example:"202"`
}

type UpdateIssueRequest struct {
	Status string `json:"status" binding:"required" example:"resolved"`
}

// Create godoc
// @Summary      Report an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Param        request body CreateIssueRequest true "Issue"
// @Success      201 {object} models.Issue
// @Router       /api/issues [post]
func (h *IssueHandler) Create(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	issue, err := h.issueService.Create(req.Category, req.Description, req.RoomNumber, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, issue)
}

// List godoc
// @Summary      All issues, newest first
// @Tags         issues
// @Produce      json
// @Success      200 {array} models.Issue
// @Router       /api/issues [get]
func (h *IssueHandler) List(c *gin.Context) {
	issues, err := h.issueService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// UpdateStatus godoc
// @Summary      Advance an issue's status
// @Tags         issues
// @Accept       json
// @Produce      json
// @Param        id path string true "Issue ID"
// @Param        request body UpdateIssueRequest true "New status"
// @Success      200 {object} models.Issue
// @Failure      404 {object} ErrorResponse
// @Router       /api/issues/{id} [patch]
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	var req UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	issue, err := h.issueService.UpdateStatus(c.Param("id"), req.Status, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Delete godoc
// @Summary      Delete an issue (organizer only)
// @Tags         issues
// @Produce      json
// @Param        id path string true "Issue ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/issues/{id} [delete]
func (h *IssueHandler) Delete(c *gin.Context) {
	if err := h.issueService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "issue deleted"})
}
