package label

import (
	"net/http"
	"strconv"

	"backend/internal/domain"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handler interface {
	ListLabels(c *gin.Context)
	CreateLabel(c *gin.Context)
	UpdateLabel(c *gin.Context)
	DeleteLabel(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List workspace labels
// @Tags Label
// @Produce json
// @Param id path int true "Workspace ID"
// @Success 200 {array} domain.Label
// @Failure 403 {object} ErrorResponse
// @Router /api/workspaces/{id}/labels [get]
func (h *handler) ListLabels(c *gin.Context) {
	workspaceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid workspace ID"})
		return
	}
	labels, err := h.service.ListLabels(middleware.UserID(c), workspaceID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels})
}

// @Summary Create label
// @Tags Label
// @Accept json
// @Produce json
// @Param id path int true "Workspace ID"
// @Param request body CreateLabelRequest true "Label"
// @Success 201 {object} domain.Label
// @Failure 403 {object} ErrorResponse
// @Router /api/workspaces/{id}/labels [post]
func (h *handler) CreateLabel(c *gin.Context) {
	workspaceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid workspace ID"})
		return
	}
	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	l, err := h.service.CreateLabel(middleware.UserID(c), workspaceID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// @Summary Update label
// @Tags Label
// @Accept json
// @Produce json
// @Param id path int true "Label ID"
// @Param request body UpdateLabelRequest true "Fields to update"
// @Success 200 {object} domain.Label
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/labels/{id} [put]
func (h *handler) UpdateLabel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid label ID"})
		return
	}
	var req UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	l, err := h.service.UpdateLabel(middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// @Summary Delete label
// @Description Delete a label and detach it from every card
// @Tags Label
// @Param id path int true "Label ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/labels/{id} [delete]
func (h *handler) DeleteLabel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid label ID"})
		return
	}
	if err := h.service.DeleteLabel(middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func fail(c *gin.Context, err error) {
	e := domain.AsError(err)
	c.JSON(e.Status, ErrorResponse{Error: e.Message})
}
