package checklist

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
	ListChecklists(c *gin.Context)
	CreateChecklist(c *gin.Context)
	UpdateChecklist(c *gin.Context)
	DeleteChecklist(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List card checklists
// @Tags Checklist
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {array} domain.Checklist
// @Failure 403 {object} ErrorResponse
// @Router /api/cards/{id}/checklists [get]
func (h *handler) ListChecklists(c *gin.Context) {
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid card ID"})
		return
	}
	checklists, err := h.service.ListChecklists(middleware.UserID(c), cardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checklists": checklists})
}

// @Summary Create checklist
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path int true "Card ID"
// @Param request body CreateChecklistRequest true "Checklist"
// @Success 201 {object} domain.Checklist
// @Failure 403 {object} ErrorResponse
// @Router /api/cards/{id}/checklists [post]
func (h *handler) CreateChecklist(c *gin.Context) {
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid card ID"})
		return
	}
	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	cl, err := h.service.CreateChecklist(middleware.UserID(c), cardID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

// @Summary Update checklist
// @Description Update the title or replace the item sequence
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path int true "Checklist ID"
// @Param request body UpdateChecklistRequest true "Fields to update"
// @Success 200 {object} domain.Checklist
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/checklists/{id} [put]
func (h *handler) UpdateChecklist(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid checklist ID"})
		return
	}
	var req UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	cl, err := h.service.UpdateChecklist(middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

// @Summary Delete checklist
// @Tags Checklist
// @Param id path int true "Checklist ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/checklists/{id} [delete]
func (h *handler) DeleteChecklist(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid checklist ID"})
		return
	}
	if err := h.service.DeleteChecklist(middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func fail(c *gin.Context, err error) {
	e := domain.AsError(err)
	c.JSON(e.Status, ErrorResponse{Error: e.Message})
}
