package comment

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
	ListComments(c *gin.Context)
	CreateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List card comments
// @Tags Comment
// @Produce json
// @Param id path int true "Card ID"
// @Success 200 {array} domain.Comment
// @Failure 403 {object} ErrorResponse
// @Router /api/cards/{id}/comments [get]
func (h *handler) ListComments(c *gin.Context) {
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid card ID"})
		return
	}
	comments, err := h.service.ListComments(middleware.UserID(c), cardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// @Summary Create comment
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path int true "Card ID"
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} domain.Comment
// @Failure 403 {object} ErrorResponse
// @Router /api/cards/{id}/comments [post]
func (h *handler) CreateComment(c *gin.Context) {
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid card ID"})
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	cm, err := h.service.CreateComment(middleware.UserID(c), cardID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

// @Summary Delete comment
// @Description Only the comment's author may delete it
// @Tags Comment
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/comments/{id} [delete]
func (h *handler) DeleteComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid comment ID"})
		return
	}
	if err := h.service.DeleteComment(middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func fail(c *gin.Context, err error) {
	e := domain.AsError(err)
	c.JSON(e.Status, ErrorResponse{Error: e.Message})
}
