package list

import (
	"net/http"
	"strconv"

	"backend/internal/domain"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreateList(c *gin.Context)
	UpdateList(c *gin.Context)
	DeleteList(c *gin.Context)
	ReorderCards(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Create list
// @Tags List
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param request body CreateListRequest true "List"
// @Success 201 {object} domain.List
// @Failure 403 {object} ErrorResponse
// @Router /api/boards/{id}/lists [post]
func (h *handler) CreateList(c *gin.Context) {
	boardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid board ID"})
		return
	}
	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	l, err := h.service.CreateList(c.Request.Context(), middleware.UserID(c), boardID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// @Summary Update list
// @Tags List
// @Accept json
// @Produce json
// @Param id path int true "List ID"
// @Param request body UpdateListRequest true "Fields to update"
// @Success 200 {object} domain.List
// @Failure 403 {object} ErrorResponse
// @Router /api/lists/{id} [put]
func (h *handler) UpdateList(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	l, err := h.service.UpdateList(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// @Summary Delete list
// @Description Delete a list and its cards
// @Tags List
// @Param id path int true "List ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /api/lists/{id} [delete]
func (h *handler) DeleteList(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteList(c.Request.Context(), middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reorder cards
// @Description Supply the complete ordered sequence of active card IDs for the list
// @Tags List
// @Accept json
// @Param id path int true "List ID"
// @Param request body ReorderCardsRequest true "Ordered card IDs"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/lists/{id}/cards/reorder [put]
func (h *handler) ReorderCards(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req ReorderCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := h.service.ReorderCards(c.Request.Context(), middleware.UserID(c), id, req.CardIDs); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list ID"})
		return 0, false
	}
	return id, true
}

func fail(c *gin.Context, err error) {
	e := domain.AsError(err)
	c.JSON(e.Status, ErrorResponse{Error: e.Message})
}
