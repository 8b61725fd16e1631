package board

import (
	"net/http"
	"strconv"

	"backend/internal/domain"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreateBoard(c *gin.Context)
	GetBoard(c *gin.Context)
	UpdateBoard(c *gin.Context)
	DeleteBoard(c *gin.Context)
	UpsertMember(c *gin.Context)
	RemoveMember(c *gin.Context)
	ReorderLists(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Create board
// @Description Create a board in a workspace; empty member list inherits workspace membership
// @Tags Board
// @Accept json
// @Produce json
// @Param id path int true "Workspace ID"
// @Param request body CreateBoardRequest true "Board"
// @Success 201 {object} domain.Board
// @Failure 403 {object} ErrorResponse
// @Router /api/workspaces/{id}/boards [post]
func (h *handler) CreateBoard(c *gin.Context) {
	workspaceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid workspace ID"})
		return
	}
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	b, err := h.service.CreateBoard(middleware.UserID(c), workspaceID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// @Summary Get board
// @Description Full board snapshot: the board, its lists and their active cards
// @Tags Board
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {object} Snapshot
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{id} [get]
func (h *handler) GetBoard(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	snap, err := h.service.GetBoard(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Update board
// @Tags Board
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param request body UpdateBoardRequest true "Fields to update"
// @Success 200 {object} domain.Board
// @Failure 403 {object} ErrorResponse
// @Router /api/boards/{id} [put]
func (h *handler) UpdateBoard(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	b, err := h.service.UpdateBoard(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Delete board
// @Description Delete a board and cascade its lists and cards; requires manage role
// @Tags Board
// @Param id path int true "Board ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /api/boards/{id} [delete]
func (h *handler) DeleteBoard(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteBoard(c.Request.Context(), middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Upsert board member
// @Description Add or change a member's role on the board; new collaborators are also added to the workspace as viewers
// @Tags Board
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param request body UpsertMemberRequest true "Member"
// @Success 200 {object} domain.Board
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/boards/{id}/members [put]
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
	b, err := h.service.UpsertMember(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Remove board member
// @Tags Board
// @Produce json
// @Param id path int true "Board ID"
// @Param user_id path int true "Member user ID"
// @Success 200 {object} domain.Board
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{id}/members/{user_id} [delete]
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
	b, err := h.service.RemoveMember(c.Request.Context(), middleware.UserID(c), id, memberID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Reorder lists
// @Description Supply the complete ordered sequence of list IDs for the board
// @Tags Board
// @Accept json
// @Param id path int true "Board ID"
// @Param request body ReorderListsRequest true "Ordered list IDs"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/boards/{id}/lists/reorder [put]
func (h *handler) ReorderLists(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req ReorderListsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := h.service.ReorderLists(c.Request.Context(), middleware.UserID(c), id, req.ListIDs); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid board ID"})
		return 0, false
	}
	return id, true
}

func fail(c *gin.Context, err error) {
	e := domain.AsError(err)
	c.JSON(e.Status, ErrorResponse{Error: e.Message})
}
