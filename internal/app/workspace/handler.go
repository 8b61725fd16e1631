package workspace

import (
	"net/http"
	"strconv"

	"backend/internal/domain"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	ListWorkspaces(c *gin.Context)
	CreateWorkspace(c *gin.Context)
	GetWorkspace(c *gin.Context)
	UpdateWorkspace(c *gin.Context)
	DeleteWorkspace(c *gin.Context)
	UpsertMember(c *gin.Context)
	RemoveMember(c *gin.Context)
	ListArchivedCards(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List workspaces
// @Description Get workspaces the caller owns, is a member of, or has joined via a board
// @Tags Workspace
// @Produce json
// @Success 200 {object} WorkspaceListResponse
// @Router /api/workspaces [get]
func (h *handler) ListWorkspaces(c *gin.Context) {
	workspaces, err := h.service.ListWorkspaces(middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, WorkspaceListResponse{Workspaces: workspaces})
}

// @Summary Create workspace
// @Description Create a workspace; the caller becomes its owner
// @Tags Workspace
// @Accept json
// @Produce json
// @Param request body CreateWorkspaceRequest true "Workspace"
// @Success 201 {object} domain.Workspace
// @Failure 400 {object} ErrorResponse
// @Router /api/workspaces [post]
func (h *handler) CreateWorkspace(c *gin.Context) {
	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	ws, err := h.service.CreateWorkspace(middleware.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ws)
}

// @Summary Get workspace
// @Tags Workspace
// @Produce json
// @Param id path int true "Workspace ID"
// @Success 200 {object} domain.Workspace
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/workspaces/{id} [get]
func (h *handler) GetWorkspace(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ws, err := h.service.GetWorkspace(middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

// @Summary Update workspace
// @Description Update name or description; requires write role
// @Tags Workspace
// @Accept json
// @Produce json
// @Param id path int true "Workspace ID"
// @Param request body UpdateWorkspaceRequest true "Fields to update"
// @Success 200 {object} domain.Workspace
// @Failure 403 {object} ErrorResponse
// @Router /api/workspaces/{id} [put]
func (h *handler) UpdateWorkspace(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	ws, err := h.service.UpdateWorkspace(middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

// @Summary Delete workspace
// @Description Delete a workspace and cascade its boards, lists and cards; requires manage role
// @Tags Workspace
// @Param id path int true "Workspace ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /api/workspaces/{id} [delete]
func (h *handler) DeleteWorkspace(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteWorkspace(c.Request.Context(), middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Upsert workspace member
// @Description Add or change a member's role; requires manage role
// @Tags Workspace
// @Accept json
// @Produce json
// @Param id path int true "Workspace ID"
// @Param request body UpsertMemberRequest true "Member"
// @Success 200 {object} domain.Workspace
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/workspaces/{id}/members [put]
func (h *handler) UpsertMember(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpsertMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	ws, err := h.service.UpsertMember(middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

// @Summary Remove workspace member
// @Description Remove a member; the owner cannot be removed; requires manage role
// @Tags Workspace
// @Produce json
// @Param id path int true "Workspace ID"
// @Param user_id path int true "Member user ID"
// @Success 200 {object} domain.Workspace
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/workspaces/{id}/members/{user_id} [delete]
func (h *handler) RemoveMember(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	memberID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user ID"})
		return
	}
	ws, err := h.service.RemoveMember(middleware.UserID(c), id, memberID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

// @Summary List archived cards
// @Description Archived cards across the workspace, most recently archived first
// @Tags Workspace
// @Produce json
// @Param id path int true "Workspace ID"
// @Success 200 {object} ArchivedCardsResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/workspaces/{id}/cards/archived [get]
func (h *handler) ListArchivedCards(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cards, err := h.service.ListArchivedCards(middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ArchivedCardsResponse{Cards: cards})
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid workspace ID"})
		return 0, false
	}
	return id, true
}

func fail(c *gin.Context, err error) {
	e := domain.AsError(err)
	c.JSON(e.Status, ErrorResponse{Error: e.Message})
}
