package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	"github.com/lemusAndy13/kanban-academico/internal/service"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
	"github.com/lemusAndy13/kanban-academico/pkg/response"
)

// LabelHandler handles label endpoints.
type LabelHandler struct {
	service *service.LabelService
}

// NewLabelHandler constructs a label handler.
func NewLabelHandler(svc *service.LabelService) *LabelHandler {
	return &LabelHandler{service: svc}
}

// List godoc
// @Summary List labels visible to the caller
// @Tags Labels
// @Produce json
// @Param board query int false "Filter by board"
// @Success 200 {array} models.Label
// @Router /labels/ [get]
func (h *LabelHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	labels, err := h.service.List(c.Request.Context(), claims.UserID, int64Query(c, "board"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, labels)
}

// Get godoc
// @Summary Get a label
// @Tags Labels
// @Produce json
// @Param id path int true "Label ID"
// @Success 200 {object} models.Label
// @Router /labels/{id}/ [get]
func (h *LabelHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "label not found"))
		return
	}
	label, err := h.service.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, label)
}

// Create godoc
// @Summary Create a label
// @Tags Labels
// @Accept json
// @Produce json
// @Param payload body models.CreateLabelRequest true "Label payload"
// @Success 201 {object} models.Label
// @Router /labels/ [post]
func (h *LabelHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	var req models.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	label, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, label)
}

// Update godoc
// @Summary Update a label
// @Tags Labels
// @Accept json
// @Produce json
// @Param id path int true "Label ID"
// @Param payload body models.UpdateLabelRequest true "Label payload"
// @Success 200 {object} models.Label
// @Router /labels/{id}/ [put]
func (h *LabelHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "label not found"))
		return
	}
	var req models.UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	label, err := h.service.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, label)
}

// Delete godoc
// @Summary Delete a label
// @Tags Labels
// @Param id path int true "Label ID"
// @Success 204
// @Router /labels/{id}/ [delete]
func (h *LabelHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	id, err := idParam(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "label not found"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
