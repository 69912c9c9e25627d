package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	"github.com/lemusAndy13/kanban-academico/internal/service"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
	"github.com/lemusAndy13/kanban-academico/pkg/response"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	service *service.CommentService
}

// NewCommentHandler constructs a comment handler.
func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

// List godoc
// @Summary List comments on the caller's boards
// @Tags Comments
// @Produce json
// @Param card query int false "Filter by card"
// @Success 200 {array} models.Comment
// @Router /comments/ [get]
func (h *CommentHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	comments, err := h.service.List(c.Request.Context(), claims.UserID, int64Query(c, "card"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comments)
}

// Get godoc
// @Summary Get a comment
// @Tags Comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} models.Comment
// @Router /comments/{id}/ [get]
func (h *CommentHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "comment not found"))
		return
	}
	comment, err := h.service.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comment)
}

// Create godoc
// @Summary Comment on a card
// @Tags Comments
// @Accept json
// @Produce json
// @Param payload body models.CreateCommentRequest true "Comment payload"
// @Success 201 {object} models.Comment
// @Router /comments/ [post]
func (h *CommentHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	comment, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

// Update godoc
// @Summary Update a comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param payload body models.UpdateCommentRequest true "Comment payload"
// @Success 200 {object} models.Comment
// @Router /comments/{id}/ [put]
func (h *CommentHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "comment not found"))
		return
	}
	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	comment, err := h.service.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Tags Comments
// @Param id path int true "Comment ID"
// @Success 204
// @Router /comments/{id}/ [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "comment not found"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
