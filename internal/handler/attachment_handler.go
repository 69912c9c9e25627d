package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	"github.com/lemusAndy13/kanban-academico/internal/service"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
	"github.com/lemusAndy13/kanban-academico/pkg/response"
)

// AttachmentHandler handles attachment endpoints.
type AttachmentHandler struct {
	service *service.AttachmentService
}

// NewAttachmentHandler constructs an attachment handler.
func NewAttachmentHandler(svc *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: svc}
}

// List godoc
// @Summary List attachments on the caller's boards
// @Tags Attachments
// @Produce json
// @Param card query int false "Filter by card"
// @Success 200 {array} models.Attachment
// @Router /attachments/ [get]
func (h *AttachmentHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	attachments, err := h.service.List(c.Request.Context(), claims.UserID, int64Query(c, "card"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attachments)
}

// Get godoc
// @Summary Get an attachment
// @Tags Attachments
// @Produce json
// @Param id path int true "Attachment ID"
// @Success 200 {object} models.Attachment
// @Router /attachments/{id}/ [get]
func (h *AttachmentHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "attachment not found"))
		return
	}
	attachment, err := h.service.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attachment)
}

// Create godoc
// @Summary Attach a resource to a card
// @Tags Attachments
// @Accept json
// @Produce json
// @Param payload body models.CreateAttachmentRequest true "Attachment payload"
// @Success 201 {object} models.Attachment
// @Router /attachments/ [post]
func (h *AttachmentHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	var req models.CreateAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	attachment, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, attachment)
}

// Update godoc
// @Summary Update an attachment
// @Tags Attachments
// @Accept json
// @Produce json
// @Param id path int true "Attachment ID"
// @Param payload body models.UpdateAttachmentRequest true "Attachment payload"
// @Success 200 {object} models.Attachment
// @Router /attachments/{id}/ [put]
func (h *AttachmentHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "attachment not found"))
		return
	}
	var req models.UpdateAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	attachment, err := h.service.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attachment)
}

// Delete godoc
// @Summary Delete an attachment
// @Tags Attachments
// @Param id path int true "Attachment ID"
// @Success 204
// @Router /attachments/{id}/ [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "attachment not found"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
