package activity

import (
	"net/http"
	"strconv"

	"backend/internal/app/access"
	"backend/internal/domain"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	ListBoardActivities(c *gin.Context)
	ListWorkspaceActivities(c *gin.Context)
}

type handler struct {
	repo     Repository
	resolver *access.Resolver
}

func NewHandler(repo Repository, resolver *access.Resolver) Handler {
	return &handler{repo: repo, resolver: resolver}
}

// @Summary List board activities
// @Description Get the audit trail for a board, newest first
// @Tags Activity
// @Produce json
// @Param id path int true "Board ID"
// @Param limit query int false "Max records (default 50)"
// @Success 200 {array} domain.Activity
// @Failure 403 {object} domain.Error
// @Failure 404 {object} domain.Error
// @Router /api/boards/{id}/activities [get]
func (h *handler) ListBoardActivities(c *gin.Context) {
	boardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid board ID"})
		return
	}
	if _, err := h.resolver.Board(middleware.UserID(c), boardID, domain.ActionRead); err != nil {
		e := domain.AsError(err)
		c.JSON(e.Status, gin.H{"error": e.Message})
		return
	}

	activities, err := h.repo.ListByBoard(boardID, limitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch activities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// @Summary List workspace activities
// @Description Get the audit trail for a workspace, newest first
// @Tags Activity
// @Produce json
// @Param id path int true "Workspace ID"
// @Param limit query int false "Max records (default 50)"
// @Success 200 {array} domain.Activity
// @Failure 403 {object} domain.Error
// @Failure 404 {object} domain.Error
// @Router /api/workspaces/{id}/activities [get]
func (h *handler) ListWorkspaceActivities(c *gin.Context) {
	workspaceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}
	if _, err := h.resolver.Workspace(middleware.UserID(c), workspaceID, domain.ActionRead); err != nil {
		e := domain.AsError(err)
		c.JSON(e.Status, gin.H{"error": e.Message})
		return
	}

	activities, err := h.repo.ListByWorkspace(workspaceID, limitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch activities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}
	return limit
}
