package card

import (
	"net/http"
	"strconv"

	"backend/internal/domain"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreateCard(c *gin.Context)
	GetCard(c *gin.Context)
	UpdateCard(c *gin.Context)
	ArchiveCard(c *gin.Context)
	RestoreCard(c *gin.Context)
	PermanentDelete(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Create card
// @Tags Card
// @Accept json
// @Produce json
// @Param id path int true "List ID"
// @Param request body CreateCardRequest true "Card"
// @Success 201 {object} domain.Card
// @Failure 403 {object} ErrorResponse
// @Router /api/lists/{id}/cards [post]
func (h *handler) CreateCard(c *gin.Context) {
	listID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list ID"})
		return
	}
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	card, err := h.service.CreateCard(c.Request.Context(), middleware.UserID(c), listID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// @Summary Get card
// @Description Card with its comments and checklists
// @Tags Card
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {object} Detail
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cards/{id} [get]
func (h *handler) GetCard(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	detail, err := h.service.GetCard(middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary Update card
// @Description Update fields; a new list_id moves the card to that list
// @Tags Card
// @Accept json
// @Produce json
// @Param id path int true "Card ID"
// @Param request body UpdateCardRequest true "Fields to update"
// @Success 200 {object} domain.Card
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/cards/{id} [put]
func (h *handler) UpdateCard(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	card, err := h.service.UpdateCard(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// @Summary Archive card
// @Description Soft-delete: the card disappears from list views but stays recoverable
// @Tags Card
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {object} domain.Card
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/cards/{id} [delete]
func (h *handler) ArchiveCard(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	card, err := h.service.ArchiveCard(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// @Summary Restore card
// @Description Un-archive; fails unless the card is archived
// @Tags Card
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {object} domain.Card
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/cards/{id}/restore [put]
func (h *handler) RestoreCard(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	card, err := h.service.RestoreCard(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// @Summary Permanently delete card
// @Description Irreversible; only archived cards can be permanently deleted
// @Tags Card
// @Param id path int true "Card ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/cards/{id}/permanent [delete]
func (h *handler) PermanentDelete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.PermanentDelete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid card ID"})
		return 0, false
	}
	return id, true
}

func fail(c *gin.Context, err error) {
	e := domain.AsError(err)
	c.JSON(e.Status, ErrorResponse{Error: e.Message})
}
